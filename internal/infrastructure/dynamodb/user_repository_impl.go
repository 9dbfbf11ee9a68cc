package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/wtech/user-platform/internal/domain/entity"
	"github.com/wtech/user-platform/internal/domain/repository"
	"github.com/wtech/user-platform/internal/domain/valueobject"
)

// UserRepository maps the User aggregate onto a partitioned table:
// pk=USER#<id>, sk=METADATA, with GSI1 (gsi1pk=USER_EMAIL, gsi1sk=<email>)
// for the email lookup path.
type UserRepository struct {
	db    *dynamodb.Client
	table string
}

func NewUserRepository(db *dynamodb.Client, table string) *UserRepository {
	return &UserRepository{db: db, table: table}
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	_, err := r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      userToItem(u),
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrPK: s(userPK(id)),
			attrSK: s(skMetadata),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return userFromItem(out.Item), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	out, err := r.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(gsi1IndexName),
		KeyConditionExpression: aws.String("gsi1pk = :gsi1pk AND gsi1sk = :gsi1sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gsi1pk": s(gsi1UserEmail),
			":gsi1sk": s(email.String()),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	return userFromItem(out.Items[0]), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrPK: s(userPK(id)),
			attrSK: s(skMetadata),
		},
	})
	return err
}

func userToItem(u *entity.User) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK:         s(userPK(u.ID)),
		attrSK:         s(skMetadata),
		attrEntityType: s("USER"),
		"userId":       s(u.ID),
		"email":        s(u.Email.String()),
		"passwordHash": s(u.PasswordHash),
		"name":         s(u.Name),
		"status":       s(string(u.Status)),
		"createdAt":    s(u.CreatedAt.Format(time.RFC3339Nano)),
		"updatedAt":    s(u.UpdatedAt.Format(time.RFC3339Nano)),
		attrGSI1PK:     s(gsi1UserEmail),
		attrGSI1SK:     s(u.Email.String()),
	}
}

// userFromItem rebuilds the aggregate from a stored record. Records that
// fail to parse are treated as absent rather than surfaced as errors.
func userFromItem(item map[string]types.AttributeValue) *entity.User {
	email, err := valueobject.NewEmail(getS(item, "email"))
	if err != nil {
		return nil
	}
	createdAt, err := time.Parse(time.RFC3339Nano, getS(item, "createdAt"))
	if err != nil {
		return nil
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, getS(item, "updatedAt"))
	if err != nil {
		return nil
	}
	id := getS(item, "userId")
	if id == "" {
		return nil
	}
	return &entity.User{
		ID:           id,
		Email:        email,
		PasswordHash: getS(item, "passwordHash"),
		Name:         getS(item, "name"),
		Status:       entity.UserStatus(getS(item, "status")),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
