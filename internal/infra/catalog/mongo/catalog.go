package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "staybcn/internal/domain/catalog"
)

const unitsCollection = "units"

// Client wraps a connected Mongo database.
type Client struct {
	DB *mongo.Database
}

func New(uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(uri).SetRetryWrites(true)
	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

// Catalog reads the unit registry from Mongo. The collection is maintained out
// of band; this process never writes to it.
type Catalog struct {
	collection *mongo.Collection
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{collection: client.DB.Collection(unitsCollection)}
}

type unitDocument struct {
	ID           string      `bson:"_id"`
	Title        string      `bson:"title"`
	TitleEN      string      `bson:"title_en"`
	NightlyRate  float64     `bson:"nightly_rate"`
	CleaningFee  float64     `bson:"cleaning_fee"`
	Capacity     int         `bson:"capacity"`
	Bedrooms     int         `bson:"bedrooms"`
	SofaBed      bool        `bson:"sofa_bed"`
	Terrace      bool        `bson:"terrace"`
	Images       []string    `bson:"images"`
	BlockedDates []time.Time `bson:"blocked_dates"`
	Position     int         `bson:"position"`
}

// List returns every unit ordered by the stored catalog position.
func (c *Catalog) List(ctx context.Context) ([]domaincatalog.Unit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := c.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var units []domaincatalog.Unit
	for cursor.Next(ctx) {
		var doc unitDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		unit, err := doc.toUnit()
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, cursor.Err()
}

// ByID returns a unit or ErrUnitNotFound.
func (c *Catalog) ByID(ctx context.Context, id domaincatalog.UnitID) (domaincatalog.Unit, error) {
	var doc unitDocument
	err := c.collection.FindOne(ctx, bson.D{{Key: "_id", Value: string(id)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domaincatalog.Unit{}, domaincatalog.ErrUnitNotFound
	}
	if err != nil {
		return domaincatalog.Unit{}, err
	}
	return doc.toUnit()
}

func (d unitDocument) toUnit() (domaincatalog.Unit, error) {
	return domaincatalog.NewUnit(domaincatalog.CreateUnitParams{
		ID:           domaincatalog.UnitID(d.ID),
		Title:        d.Title,
		TitleEN:      d.TitleEN,
		NightlyRate:  d.NightlyRate,
		CleaningFee:  d.CleaningFee,
		Capacity:     d.Capacity,
		Bedrooms:     d.Bedrooms,
		SofaBed:      d.SofaBed,
		Terrace:      d.Terrace,
		Images:       d.Images,
		BlockedDates: d.BlockedDates,
	})
}

var _ domaincatalog.Catalog = (*Catalog)(nil)
