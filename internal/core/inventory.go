package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/zerox80/tresormatch/internal/core/match"
	"github.com/zerox80/tresormatch/internal/core/model"
	"github.com/zerox80/tresormatch/internal/driver"
)

// ErrNotFound is returned when an item or quarantine pair does not exist.
var ErrNotFound = errors.New("not found")

// Inventory is the orchestrator over the item store, the quarantine store and
// the matching engine. It supplies candidates to the matcher already scoped to
// one owner, sorted by (lowercased name, uuid) and truncated to the configured
// limit.
type Inventory struct {
	Driver driver.GraphDriver
}

func NewInventory(d driver.GraphDriver) *Inventory {
	return &Inventory{Driver: d}
}

func (inv *Inventory) CreateItem(ctx context.Context, item model.Item) (*model.Item, error) {
	if item.UUID == "" {
		item.UUID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	var purchaseDate interface{}
	if item.PurchaseDate != nil {
		purchaseDate = item.PurchaseDate.String()
	}

	params := map[string]interface{}{
		"uuid":          item.UUID,
		"owner_id":      item.OwnerID,
		"name":          item.Name,
		"description":   item.Description,
		"wodis_number":  item.WodisNumber,
		"purchase_date": purchaseDate,
		"created_at":    item.CreatedAt.Format(time.RFC3339),
	}

	if _, err := inv.Driver.ExecuteQuery(ctx, driver.SaveItemQuery, params); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	return &item, nil
}

func (inv *Inventory) GetItem(ctx context.Context, itemUUID string) (*model.Item, error) {
	res, err := inv.Driver.ExecuteQuery(ctx, driver.GetItemQuery, map[string]interface{}{"uuid": itemUUID})
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if len(res.Records) == 0 {
		return nil, ErrNotFound
	}
	item := itemFromRecord(res.Records[0])
	return &item, nil
}

// ListItems returns one owner's items ordered by (lowercased name, uuid),
// truncated to limit. This is the candidate supply for a matching pass.
func (inv *Inventory) ListItems(ctx context.Context, ownerID string, limit int) ([]model.Item, error) {
	res, err := inv.Driver.ExecuteQuery(ctx, driver.ListItemsByOwnerQuery, map[string]interface{}{
		"owner_id": ownerID,
		"limit":    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]model.Item, 0, len(res.Records))
	for _, rec := range res.Records {
		items = append(items, itemFromRecord(rec))
	}
	return items, nil
}

func (inv *Inventory) DeleteItem(ctx context.Context, itemUUID string) error {
	res, err := inv.Driver.ExecuteQuery(ctx, driver.DeleteItemQuery, map[string]interface{}{"uuid": itemUUID})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

// AddQuarantine flags two items as a confirmed non-duplicate pair. The pair is
// normalized before storage; re-adding a previously deactivated pair
// reactivates the existing entry instead of creating a second edge.
func (inv *Inventory) AddQuarantine(ctx context.Context, ownerID, itemA, itemB string) (*model.QuarantinePair, error) {
	if itemA == itemB {
		return nil, fmt.Errorf("cannot quarantine an item against itself")
	}
	pair := match.NewPair(itemA, itemB)

	entry := model.QuarantinePair{
		UUID:      uuid.New().String(),
		OwnerID:   ownerID,
		ItemA:     pair.A,
		ItemB:     pair.B,
		CreatedAt: time.Now().UTC(),
	}

	params := map[string]interface{}{
		"uuid":        entry.UUID,
		"owner_id":    entry.OwnerID,
		"item_a_uuid": entry.ItemA,
		"item_b_uuid": entry.ItemB,
		"created_at":  entry.CreatedAt.Format(time.RFC3339),
	}

	res, err := inv.Driver.ExecuteQuery(ctx, driver.SaveQuarantineQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to save quarantine pair: %w", err)
	}
	if len(res.Records) == 0 {
		return nil, ErrNotFound
	}

	// MERGE may have matched an existing edge; keep its identity.
	if existing := stringField(res.Records[0], "uuid"); existing != "" {
		entry.UUID = existing
	}
	if createdAt := timeField(res.Records[0], "created_at"); !createdAt.IsZero() {
		entry.CreatedAt = createdAt
	}

	return &entry, nil
}

func (inv *Inventory) DeactivateQuarantine(ctx context.Context, pairUUID string) error {
	res, err := inv.Driver.ExecuteQuery(ctx, driver.DeactivateQuarantineQuery, map[string]interface{}{
		"uuid":           pairUUID,
		"deactivated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate quarantine pair: %w", err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (inv *Inventory) ReactivateQuarantine(ctx context.Context, pairUUID string) error {
	res, err := inv.Driver.ExecuteQuery(ctx, driver.ReactivateQuarantineQuery, map[string]interface{}{"uuid": pairUUID})
	if err != nil {
		return fmt.Errorf("failed to reactivate quarantine pair: %w", err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveQuarantine returns one owner's active quarantine pairs.
func (inv *Inventory) ListActiveQuarantine(ctx context.Context, ownerID string) ([]model.QuarantinePair, error) {
	res, err := inv.Driver.ExecuteQuery(ctx, driver.GetActiveQuarantineQuery, map[string]interface{}{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list quarantine pairs: %w", err)
	}

	pairs := make([]model.QuarantinePair, 0, len(res.Records))
	for _, rec := range res.Records {
		pairs = append(pairs, model.QuarantinePair{
			UUID:      stringField(rec, "uuid"),
			OwnerID:   stringField(rec, "owner_id"),
			ItemA:     stringField(rec, "item_a_uuid"),
			ItemB:     stringField(rec, "item_b_uuid"),
			CreatedAt: timeField(rec, "created_at"),
		})
	}
	return pairs, nil
}

// FindDuplicates runs one duplicate analysis pass for an owner: load the
// candidate snapshot, load the active quarantine pairs, and hand both to the
// matching engine. presetUsed is echoed into the report for caller
// transparency.
func (inv *Inventory) FindDuplicates(ctx context.Context, ownerID string, opts match.Options, presetUsed string) (*match.Report, error) {
	candidates, err := inv.ListItems(ctx, ownerID, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	active, err := inv.ListActiveQuarantine(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quarantine pairs: %w", err)
	}
	quarantined := make(map[match.Pair]bool, len(active))
	for _, q := range active {
		quarantined[match.NewPair(q.ItemA, q.ItemB)] = true
	}

	report := match.Run(candidates, opts, quarantined, presetUsed)
	return &report, nil
}

func itemFromRecord(rec *neo4j.Record) model.Item {
	item := model.Item{
		UUID:        stringField(rec, "uuid"),
		OwnerID:     stringField(rec, "owner_id"),
		Name:        stringField(rec, "name"),
		Description: stringField(rec, "description"),
		WodisNumber: stringField(rec, "wodis_number"),
		CreatedAt:   timeField(rec, "created_at"),
	}
	if raw := stringField(rec, "purchase_date"); raw != "" {
		if date, err := model.ParseDate(raw); err == nil {
			item.PurchaseDate = &date
		}
	}
	return item
}

func stringField(rec *neo4j.Record, key string) string {
	value, _ := rec.Get(key)
	s, _ := value.(string)
	return s
}

func timeField(rec *neo4j.Record, key string) time.Time {
	raw := stringField(rec, key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
