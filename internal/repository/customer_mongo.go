package repository

import (
	"context"
	"errors"

	"github.com/crmlite/customers/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/crmlite/customers/internal/errors"
)

const (
	customersDatabase    = "customers"
	customersCollection  = "customers"
	countersCollection   = "counters"
	customersCounterName = "customers"
)

type mongoCustomerRepository struct {
	db *mongo.Database
}

func NewMongoCustomerRepository(client *mongo.Client) CustomerRepository {
	return &mongoCustomerRepository{db: client.Database(customersDatabase)}
}

func (repo *mongoCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	return repo.findOne(ctx, bson.M{"_id": id})
}

func (repo *mongoCustomerRepository) FindByEmail(ctx context.Context, email string, excludeID int64) (*model.Customer, error) {
	return repo.findOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": excludeID}})
}

func (repo *mongoCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cur, err := repo.customers().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0)
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (repo *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	id, err := repo.nextID(ctx)
	if err != nil {
		return err
	}
	c.ID = id

	if _, err := repo.customers().InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictErr("Customer with this email already exists.")
		}
		return err
	}
	return nil
}

func (repo *mongoCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	if _, err := repo.customers().ReplaceOne(ctx, bson.M{"_id": c.ID}, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictErr("Customer with this email already exists.")
		}
		return err
	}
	return nil
}

func (repo *mongoCustomerRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := repo.customers().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (repo *mongoCustomerRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var c model.Customer
	if err := repo.customers().FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// nextID allocates a monotonically increasing integer id from the
// counters collection, mongo has no serial column equivalent
func (repo *mongoCustomerRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	res := repo.db.Collection(countersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": customersCounterName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (repo *mongoCustomerRepository) customers() *mongo.Collection {
	return repo.db.Collection(customersCollection)
}
