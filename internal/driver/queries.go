package driver

const (
	SaveItemQuery = `
		MERGE (n:Item {uuid: $uuid})
		SET n.owner_id = $owner_id,
			n.name = $name,
			n.description = $description,
			n.wodis_number = $wodis_number,
			n.purchase_date = $purchase_date,
			n.created_at = $created_at
		RETURN n.uuid AS uuid
	`

	GetItemQuery = `
		MATCH (n:Item {uuid: $uuid})
		RETURN n.uuid AS uuid, n.owner_id AS owner_id, n.name AS name,
			n.description AS description, n.wodis_number AS wodis_number,
			n.purchase_date AS purchase_date, n.created_at AS created_at
	`

	// Candidate supply: one owner's items, pre-sorted by (lowercased name,
	// uuid) and truncated in the database so the quadratic matching pass only
	// ever sees the limited slice.
	ListItemsByOwnerQuery = `
		MATCH (n:Item {owner_id: $owner_id})
		RETURN n.uuid AS uuid, n.owner_id AS owner_id, n.name AS name,
			n.description AS description, n.wodis_number AS wodis_number,
			n.purchase_date AS purchase_date, n.created_at AS created_at
		ORDER BY toLower(n.name) ASC, n.uuid ASC
		LIMIT $limit
	`

	DeleteItemQuery = `
		MATCH (n:Item {uuid: $uuid})
		DETACH DELETE n
		RETURN $uuid AS uuid
	`

	// The quarantine edge always runs from the smaller item uuid to the
	// larger one, so MERGE finds the same edge no matter which order the
	// caller named the pair in. Re-adding a deactivated pair reactivates it.
	SaveQuarantineQuery = `
		MATCH (a:Item {uuid: $item_a_uuid})
		MATCH (b:Item {uuid: $item_b_uuid})
		MERGE (a)-[q:QUARANTINED]->(b)
		ON CREATE SET q.uuid = $uuid, q.created_at = $created_at
		SET q.owner_id = $owner_id, q.deactivated_at = null
		RETURN q.uuid AS uuid, q.created_at AS created_at
	`

	DeactivateQuarantineQuery = `
		MATCH ()-[q:QUARANTINED {uuid: $uuid}]->()
		SET q.deactivated_at = $deactivated_at
		RETURN q.uuid AS uuid
	`

	ReactivateQuarantineQuery = `
		MATCH ()-[q:QUARANTINED {uuid: $uuid}]->()
		SET q.deactivated_at = null
		RETURN q.uuid AS uuid
	`

	GetActiveQuarantineQuery = `
		MATCH (a:Item)-[q:QUARANTINED]->(b:Item)
		WHERE q.owner_id = $owner_id AND q.deactivated_at IS NULL
		RETURN q.uuid AS uuid, q.owner_id AS owner_id,
			a.uuid AS item_a_uuid, b.uuid AS item_b_uuid,
			q.created_at AS created_at
	`
)
