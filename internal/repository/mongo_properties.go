package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/query"
)

// propertyCollection is the subset of *mongo.Collection used by the store.
type propertyCollection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

var _ propertyCollection = (*mongo.Collection)(nil)

type sizeDocument struct {
	Value float64 `bson:"value"`
	Unit  string  `bson:"unit"`
}

type locationDocument struct {
	City    string `bson:"city"`
	Area    string `bson:"area"`
	Address string `bson:"address"`
}

type propertyDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	PropertyType string             `bson:"propertyType"`
	Size         sizeDocument       `bson:"size"`
	Price        float64            `bson:"price"`
	Purpose      string             `bson:"purpose"`
	Location     locationDocument   `bson:"location"`
	Bedrooms     int                `bson:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms"`
	Features     []string           `bson:"features"`
	Images       []string           `bson:"images"`
	MainImage    string             `bson:"mainImage"`
	CreatedBy    string             `bson:"createdBy"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// MongoPropertyStore implements PropertyStore on a MongoDB collection.
type MongoPropertyStore struct {
	collection propertyCollection
}

// NewMongoPropertyStore wires a store backed by the given collection.
func NewMongoPropertyStore(collection *mongo.Collection) *MongoPropertyStore {
	return &MongoPropertyStore{collection: collection}
}

var _ PropertyStore = (*MongoPropertyStore)(nil)

// Find runs the query with the requested ordering and window.
func (s *MongoPropertyStore) Find(ctx context.Context, q query.Query, sort []query.SortField, skip, limit int64) ([]entity.Property, error) {
	opts := options.Find().SetSort(sortDocument(sort))
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, filterDocument(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]entity.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		properties = append(properties, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

// Count returns the number of documents matching q.
func (s *MongoPropertyStore) Count(ctx context.Context, q query.Query) (int64, error) {
	total, err := s.collection.CountDocuments(ctx, filterDocument(q))
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return total, nil
}

// FindByID loads a single listing. Malformed ids are reported as not found.
func (s *MongoPropertyStore) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	var doc propertyDocument
	if err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property by id: %w", err)
	}

	p := doc.toEntity()
	return &p, nil
}

// Create inserts the listing and writes the generated id back.
func (s *MongoPropertyStore) Create(ctx context.Context, property *entity.Property) error {
	if property == nil {
		return fmt.Errorf("property payload is nil")
	}

	doc, err := newPropertyDocument(property)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	property.ID = doc.ID.Hex()
	return nil
}

// Replace overwrites the stored document with property.
func (s *MongoPropertyStore) Replace(ctx context.Context, property *entity.Property) error {
	if property == nil {
		return fmt.Errorf("property payload is nil")
	}

	doc, err := newPropertyDocument(property)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return ErrPropertyNotFound
	}

	result, err := s.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return fmt.Errorf("replace property: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Delete removes the listing with the given id.
func (s *MongoPropertyStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPropertyNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// filterDocument translates a predicate tree into a MongoDB filter. Range
// bounds on the same field are merged into one operator document.
func filterDocument(q query.Query) bson.D {
	doc := bson.D{}
	ranges := make(map[string]int)

	for _, term := range q.Terms {
		switch term.Op {
		case query.OpEq:
			doc = append(doc, bson.E{Key: term.Field, Value: term.Value})
		case query.OpGte, query.OpLte:
			bound := bson.E{Key: "$" + string(term.Op), Value: term.Value}
			if idx, ok := ranges[term.Field]; ok {
				doc[idx].Value = append(doc[idx].Value.(bson.D), bound)
				continue
			}
			ranges[term.Field] = len(doc)
			doc = append(doc, bson.E{Key: term.Field, Value: bson.D{bound}})
		case query.OpContains:
			doc = append(doc, bson.E{Key: term.Field, Value: containsPattern(term.Value)})
		}
	}

	if len(q.Search) > 0 {
		or := make(bson.A, 0, len(q.Search))
		for _, term := range q.Search {
			or = append(or, bson.D{{Key: term.Field, Value: containsPattern(term.Value)}})
		}
		doc = append(doc, bson.E{Key: "$or", Value: or})
	}

	return doc
}

func containsPattern(value any) primitive.Regex {
	text, _ := value.(string)
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func sortDocument(sort []query.SortField) bson.D {
	doc := make(bson.D, 0, len(sort))
	for _, key := range sort {
		direction := 1
		if key.Descending {
			direction = -1
		}
		doc = append(doc, bson.E{Key: key.Field, Value: direction})
	}
	return doc
}

func newPropertyDocument(p *entity.Property) (propertyDocument, error) {
	doc := propertyDocument{
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: string(p.PropertyType),
		Size:         sizeDocument{Value: p.Size.Value, Unit: string(p.Size.Unit)},
		Price:        p.Price,
		Purpose:      string(p.Purpose),
		Location:     locationDocument{City: p.Location.City, Area: p.Location.Area, Address: p.Location.Address},
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Features:     p.Features,
		Images:       p.Images,
		MainImage:    p.MainImage,
		CreatedBy:    p.CreatedBy,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
	if doc.Features == nil {
		doc.Features = []string{}
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return propertyDocument{}, fmt.Errorf("invalid property id %q: %w", p.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d propertyDocument) toEntity() entity.Property {
	return entity.Property{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		PropertyType: entity.PropertyType(d.PropertyType),
		Size:         entity.Size{Value: d.Size.Value, Unit: entity.SizeUnit(d.Size.Unit)},
		Price:        d.Price,
		Purpose:      entity.Purpose(d.Purpose),
		Location:     entity.Location{City: d.Location.City, Area: d.Location.Area, Address: d.Location.Address},
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		Features:     d.Features,
		Images:       d.Images,
		MainImage:    d.MainImage,
		CreatedBy:    d.CreatedBy,
		Status:       entity.Status(d.Status),
		CreatedAt:    d.CreatedAt,
	}
}
