package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/cse-motors/dealership/internal/core/domain"
)

type ClassificationRepository struct {
	db Querier
}

func NewClassificationRepository(db Querier) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

func (r *ClassificationRepository) List(ctx context.Context) ([]domain.Classification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT classification_id, classification_name FROM classification ORDER BY classification_name`)
	if err != nil {
		return nil, oops.Code("CLASSIFICATION_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	list := []domain.Classification{}
	for rows.Next() {
		var c domain.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, oops.Code("CLASSIFICATION_SCAN_FAILED").Wrap(err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CLASSIFICATION_LIST_FAILED").Wrap(err)
	}
	return list, nil
}

func (r *ClassificationRepository) FindByID(ctx context.Context, id int64) (*domain.Classification, error) {
	var c domain.Classification
	err := r.db.QueryRow(ctx,
		`SELECT classification_id, classification_name FROM classification WHERE classification_id = $1`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, oops.Code("CLASSIFICATION_GET_FAILED").With("classification_id", id).Wrap(err)
	}
	return &c, nil
}

func (r *ClassificationRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classification WHERE classification_name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, oops.Code("CLASSIFICATION_NAME_CHECK_FAILED").With("name", name).Wrap(err)
	}
	return exists, nil
}

func (r *ClassificationRepository) Create(ctx context.Context, name string) (*domain.Classification, error) {
	c := domain.Classification{Name: name}
	err := r.db.QueryRow(ctx,
		`INSERT INTO classification (classification_name) VALUES ($1) RETURNING classification_id`, name).
		Scan(&c.ID)
	if err != nil {
		if derr := constraintError(err); derr != nil {
			return nil, derr
		}
		return nil, oops.Code("CLASSIFICATION_CREATE_FAILED").With("name", name).Wrap(err)
	}
	return &c, nil
}

// itemSelect joins the classification name onto rows of the relation
// named "i", which is either the inventory table or a RETURNING CTE.
const itemSelect = `
	SELECT i.inv_id, i.classification_id, c.classification_name, i.inv_make, i.inv_model,
		i.inv_year, i.inv_description, i.inv_image, i.inv_thumbnail, i.inv_price::text,
		i.inv_miles, i.inv_color
	FROM %s i
	JOIN classification c ON c.classification_id = i.classification_id`

type InventoryRepository struct {
	db Querier
}

func NewInventoryRepository(db Querier) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) ListByClassification(ctx context.Context, classificationID int64) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx,
		itemQuery("inventory")+` WHERE i.classification_id = $1 ORDER BY i.inv_make, i.inv_model, i.inv_id`,
		classificationID)
	if err != nil {
		return nil, oops.Code("INVENTORY_LIST_FAILED").With("classification_id", classificationID).Wrap(err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, oops.Code("INVENTORY_SCAN_FAILED").With("classification_id", classificationID).Wrap(err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("INVENTORY_LIST_FAILED").With("classification_id", classificationID).Wrap(err)
	}
	return items, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, itemQuery("inventory")+` WHERE i.inv_id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, oops.Code("INVENTORY_GET_FAILED").With("inv_id", id).Wrap(err)
	}
	return item, nil
}

// Create inserts the vehicle. An unknown classification id surfaces as
// domain.ErrNotFound through the foreign key.
func (r *InventoryRepository) Create(ctx context.Context, s domain.VehicleSpec) (*domain.InventoryItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		WITH written AS (
			INSERT INTO inventory (inv_make, inv_model, inv_year, inv_description, inv_image,
				inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10)
			RETURNING *
		)`+itemQuery("written"), specArgs(s)...))
	if err != nil {
		if derr := constraintError(err); derr != nil {
			return nil, derr
		}
		return nil, oops.Code("INVENTORY_CREATE_FAILED").With("make", s.Make).With("model", s.Model).Wrap(err)
	}
	return item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, id int64, s domain.VehicleSpec) (*domain.InventoryItem, error) {
	args := append(specArgs(s), id)
	item, err := scanItem(r.db.QueryRow(ctx, `
		WITH written AS (
			UPDATE inventory
			SET inv_make = $1, inv_model = $2, inv_year = $3, inv_description = $4, inv_image = $5,
				inv_thumbnail = $6, inv_price = $7::numeric, inv_miles = $8, inv_color = $9,
				classification_id = $10
			WHERE inv_id = $11
			RETURNING *
		)`+itemQuery("written"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		if derr := constraintError(err); derr != nil {
			return nil, derr
		}
		return nil, oops.Code("INVENTORY_UPDATE_FAILED").With("inv_id", id).Wrap(err)
	}
	return item, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory WHERE inv_id = $1`, id)
	if err != nil {
		return oops.Code("INVENTORY_DELETE_FAILED").With("inv_id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func itemQuery(relation string) string {
	return fmt.Sprintf(itemSelect, relation)
}

func specArgs(s domain.VehicleSpec) []any {
	return []any{s.Make, s.Model, s.Year, s.Description, s.ImagePath,
		s.ThumbnailPath, s.Price.String(), s.Miles, s.Color, s.ClassificationID}
}

func scanItem(row pgx.Row) (*domain.InventoryItem, error) {
	var (
		item  domain.InventoryItem
		price string
	)
	if err := row.Scan(&item.ID, &item.ClassificationID, &item.ClassificationName, &item.Make, &item.Model,
		&item.Year, &item.Description, &item.ImagePath, &item.ThumbnailPath, &price,
		&item.Miles, &item.Color); err != nil {
		return nil, err
	}
	p, err := domain.ParsePrice(price)
	if err != nil {
		return nil, err
	}
	item.Price = p
	return &item, nil
}
