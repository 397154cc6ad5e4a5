package core

import (
	"context"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerox80/tresormatch/internal/core/match"
	"github.com/zerox80/tresormatch/internal/core/model"
	"github.com/zerox80/tresormatch/internal/driver"
)

func TestCreateItem_AssignsIdentity(t *testing.T) {
	mock := &MockDriver{}
	inv := NewInventory(mock)

	purchased := model.NewDate(2024, time.March, 1)
	item, err := inv.CreateItem(context.Background(), model.Item{
		OwnerID:      "owner-1",
		Name:         "Printer",
		WodisNumber:  "WD-1",
		PurchaseDate: &purchased,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, item.UUID)
	assert.False(t, item.CreatedAt.IsZero())

	require.Len(t, mock.Queries, 1)
	assert.Equal(t, driver.SaveItemQuery, mock.Queries[0])
	assert.Equal(t, "owner-1", mock.Params[0]["owner_id"])
	assert.Equal(t, "2024-03-01", mock.Params[0]["purchase_date"])
}

func TestCreateItem_NilPurchaseDate(t *testing.T) {
	mock := &MockDriver{}
	inv := NewInventory(mock)

	_, err := inv.CreateItem(context.Background(), model.Item{OwnerID: "owner-1", Name: "Printer"})

	require.NoError(t, err)
	assert.Nil(t, mock.Params[0]["purchase_date"])
}

func TestListItems_ParsesRecords(t *testing.T) {
	mock := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.ListItemsByOwnerQuery: {Records: []*neo4j.Record{
				itemRecord("a", "owner-1", "Printer", "laser", "WD-1", "2024-03-01"),
				itemRecord("b", "owner-1", "Scanner", "", "", nil),
			}},
		},
	}
	inv := NewInventory(mock)

	items, err := inv.ListItems(context.Background(), "owner-1", 250)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Printer", items[0].Name)
	require.NotNil(t, items[0].PurchaseDate)
	assert.Equal(t, "2024-03-01", items[0].PurchaseDate.String())
	assert.Nil(t, items[1].PurchaseDate)
	assert.Equal(t, 250, mock.Params[0]["limit"])
}

func TestGetItem_NotFound(t *testing.T) {
	inv := NewInventory(&MockDriver{})

	_, err := inv.GetItem(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddQuarantine_NormalizesPair(t *testing.T) {
	mock := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.SaveQuarantineQuery: {Records: []*neo4j.Record{
				record([]string{"uuid", "created_at"}, "existing-q", "2024-01-01T00:00:00Z"),
			}},
		},
	}
	inv := NewInventory(mock)

	// Caller names the pair in reverse order; storage always sees (min, max).
	pair, err := inv.AddQuarantine(context.Background(), "owner-1", "zzz", "aaa")

	require.NoError(t, err)
	assert.Equal(t, "aaa", pair.ItemA)
	assert.Equal(t, "zzz", pair.ItemB)
	assert.Equal(t, "aaa", mock.Params[0]["item_a_uuid"])
	assert.Equal(t, "zzz", mock.Params[0]["item_b_uuid"])

	// MERGE matched an existing edge; its identity wins.
	assert.Equal(t, "existing-q", pair.UUID)
}

func TestAddQuarantine_SelfPair(t *testing.T) {
	inv := NewInventory(&MockDriver{})

	_, err := inv.AddQuarantine(context.Background(), "owner-1", "a", "a")
	assert.Error(t, err)
}

func TestDeactivateQuarantine_NotFound(t *testing.T) {
	inv := NewInventory(&MockDriver{})

	err := inv.DeactivateQuarantine(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindDuplicates_ExcludesQuarantinedPairs(t *testing.T) {
	listResult := neo4j.EagerResult{Records: []*neo4j.Record{
		itemRecord("a", "owner-1", "Printer", "", "", nil),
		itemRecord("b", "owner-1", "printer", "", "", nil),
	}}

	opts := match.Options{NameMode: match.ModeExact, Limit: match.DefaultLimit}

	// Without quarantine the two items form one group.
	mock := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ListItemsByOwnerQuery: listResult,
	}}
	report, err := NewInventory(mock).FindDuplicates(context.Background(), "owner-1", opts, "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.AnalyzedCount)
	require.Len(t, report.Groups, 1)

	// With the pair quarantined the same snapshot yields zero groups.
	mock = &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ListItemsByOwnerQuery: listResult,
		driver.GetActiveQuarantineQuery: {Records: []*neo4j.Record{
			record(
				[]string{"uuid", "owner_id", "item_a_uuid", "item_b_uuid", "created_at"},
				"q1", "owner-1", "a", "b", "2024-01-01T00:00:00Z",
			),
		}},
	}}
	report, err = NewInventory(mock).FindDuplicates(context.Background(), "owner-1", opts, "")
	require.NoError(t, err)
	assert.Empty(t, report.Groups)
}

func TestFindDuplicates_EchoesPreset(t *testing.T) {
	mock := &MockDriver{}
	report, err := NewInventory(mock).FindDuplicates(context.Background(), "owner-1", match.AutoOptions(), match.PresetAuto)

	require.NoError(t, err)
	assert.Equal(t, match.PresetAuto, report.PresetUsed)
	assert.Equal(t, 0, report.AnalyzedCount)
	assert.NotNil(t, report.Groups)
}
