package mongo

import (
	"context"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cse-motors/dealership/internal/core/domain"
)

type classificationDocument struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

type ClassificationRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewClassificationRepository(db *mongo.Database, counters *Counters) *ClassificationRepository {
	return &ClassificationRepository{col: db.Collection(collectionClassifications), counters: counters}
}

func (r *ClassificationRepository) List(ctx context.Context) ([]domain.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, oops.Code("CLASSIFICATION_LIST_FAILED").Wrap(err)
	}
	var docs []classificationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, oops.Code("CLASSIFICATION_LIST_FAILED").Wrap(err)
	}

	list := make([]domain.Classification, 0, len(docs))
	for _, d := range docs {
		list = append(list, domain.Classification{ID: d.ID, Name: d.Name})
	}
	return list, nil
}

func (r *ClassificationRepository) FindByID(ctx context.Context, id int64) (*domain.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d classificationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, oops.Code("CLASSIFICATION_GET_FAILED").With("classification_id", id).Wrap(err)
	}
	return &domain.Classification{ID: d.ID, Name: d.Name}, nil
}

func (r *ClassificationRepository) NameExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, oops.Code("CLASSIFICATION_NAME_CHECK_FAILED").With("name", name).Wrap(err)
	}
	return n > 0, nil
}

func (r *ClassificationRepository) Create(ctx context.Context, name string) (*domain.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, collectionClassifications)
	if err != nil {
		return nil, err
	}
	if _, err := r.col.InsertOne(ctx, classificationDocument{ID: id, Name: name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, oops.Code("CLASSIFICATION_CREATE_FAILED").With("name", name).Wrap(err)
	}
	return &domain.Classification{ID: id, Name: name}, nil
}

type itemDocument struct {
	ID               int64  `bson:"_id"`
	ClassificationID int64  `bson:"classification_id"`
	Make             string `bson:"make"`
	Model            string `bson:"model"`
	Year             int    `bson:"year"`
	Description      string `bson:"description"`
	ImagePath        string `bson:"image"`
	ThumbnailPath    string `bson:"thumbnail"`
	PriceCents       int64  `bson:"price_cents"`
	Miles            int64  `bson:"miles"`
	Color            string `bson:"color"`
}

func newItemDocument(id int64, s domain.VehicleSpec) itemDocument {
	return itemDocument{
		ID:               id,
		ClassificationID: s.ClassificationID,
		Make:             s.Make,
		Model:            s.Model,
		Year:             s.Year,
		Description:      s.Description,
		ImagePath:        s.ImagePath,
		ThumbnailPath:    s.ThumbnailPath,
		PriceCents:       int64(s.Price),
		Miles:            s.Miles,
		Color:            s.Color,
	}
}

func (d itemDocument) toDomain(classificationName string) domain.InventoryItem {
	item := domain.VehicleSpec{
		ClassificationID: d.ClassificationID,
		Make:             d.Make,
		Model:            d.Model,
		Year:             d.Year,
		Description:      d.Description,
		ImagePath:        d.ImagePath,
		ThumbnailPath:    d.ThumbnailPath,
		Price:            domain.Price(d.PriceCents),
		Miles:            d.Miles,
		Color:            d.Color,
	}.Item(d.ID)
	item.ClassificationName = classificationName
	return item
}

// InventoryRepository checks the classification reference itself, since
// documents carry no foreign keys.
type InventoryRepository struct {
	col      *mongo.Collection
	classes  *ClassificationRepository
	counters *Counters
}

func NewInventoryRepository(db *mongo.Database, classes *ClassificationRepository, counters *Counters) *InventoryRepository {
	return &InventoryRepository{col: db.Collection(collectionInventory), classes: classes, counters: counters}
}

func (r *InventoryRepository) ListByClassification(ctx context.Context, classificationID int64) ([]domain.InventoryItem, error) {
	class, err := r.classes.FindByID(ctx, classificationID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"classification_id": classificationID},
		options.Find().SetSort(bson.D{{Key: "make", Value: 1}, {Key: "model", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, oops.Code("INVENTORY_LIST_FAILED").With("classification_id", classificationID).Wrap(err)
	}
	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, oops.Code("INVENTORY_LIST_FAILED").With("classification_id", classificationID).Wrap(err)
	}

	items := make([]domain.InventoryItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain(class.Name))
	}
	return items, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d itemDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, oops.Code("INVENTORY_GET_FAILED").With("inv_id", id).Wrap(err)
	}
	return r.withClassification(ctx, d)
}

func (r *InventoryRepository) Create(ctx context.Context, s domain.VehicleSpec) (*domain.InventoryItem, error) {
	class, err := r.classes.FindByID(ctx, s.ClassificationID)
	if err != nil {
		return nil, err
	}
	id, err := r.counters.Next(ctx, collectionInventory)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d := newItemDocument(id, s)
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, oops.Code("INVENTORY_CREATE_FAILED").With("make", s.Make).With("model", s.Model).Wrap(err)
	}
	item := d.toDomain(class.Name)
	return &item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, id int64, s domain.VehicleSpec) (*domain.InventoryItem, error) {
	class, err := r.classes.FindByID(ctx, s.ClassificationID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d := newItemDocument(id, s)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, d)
	if err != nil {
		return nil, oops.Code("INVENTORY_UPDATE_FAILED").With("inv_id", id).Wrap(err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	item := d.toDomain(class.Name)
	return &item, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return oops.Code("INVENTORY_DELETE_FAILED").With("inv_id", id).Wrap(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) withClassification(ctx context.Context, d itemDocument) (*domain.InventoryItem, error) {
	class, err := r.classes.FindByID(ctx, d.ClassificationID)
	if err != nil {
		return nil, err
	}
	item := d.toDomain(class.Name)
	return &item, nil
}
