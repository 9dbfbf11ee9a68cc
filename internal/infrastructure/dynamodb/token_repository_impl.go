package dynamodb

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/wtech/user-platform/internal/domain/entity"
	"github.com/wtech/user-platform/internal/domain/repository"
)

// TokenRepository stores issued tokens as pk=USER#<userId>,
// sk=TOKEN#<first 8 chars>. Lookup by value goes through GSI1
// (gsi1pk=TOKEN, gsi1sk=<token>) instead of a table scan. Records also
// carry expiresAtEpoch so the table's TTL setting can reap expired tokens.
type TokenRepository struct {
	db    *dynamodb.Client
	table string
}

func NewTokenRepository(db *dynamodb.Client, table string) *TokenRepository {
	return &TokenRepository{db: db, table: table}
}

func (r *TokenRepository) Save(ctx context.Context, token entity.AuthToken) error {
	_, err := r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      tokenToItem(token),
	})
	return err
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*entity.AuthToken, error) {
	out, err := r.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(gsi1IndexName),
		KeyConditionExpression: aws.String("gsi1pk = :gsi1pk AND gsi1sk = :gsi1sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gsi1pk": s(gsi1Token),
			":gsi1sk": s(token),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	return tokenFromItem(out.Items[0]), nil
}

func (r *TokenRepository) FindByUserID(ctx context.Context, userID string) ([]entity.AuthToken, error) {
	out, err := r.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :tok)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  s(userPK(userID)),
			":tok": s(tokenKeyPrefix),
		},
	})
	if err != nil {
		return nil, err
	}
	tokens := make([]entity.AuthToken, 0, len(out.Items))
	for _, item := range out.Items {
		if t := tokenFromItem(item); t != nil {
			tokens = append(tokens, *t)
		}
	}
	return tokens, nil
}

func (r *TokenRepository) Delete(ctx context.Context, userID, tokenID string) error {
	_, err := r.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrPK: s(userPK(userID)),
			attrSK: s(tokenSK(tokenID)),
		},
	})
	return err
}

func tokenToItem(t entity.AuthToken) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK:           s(userPK(t.UserID)),
		attrSK:           s(tokenSK(t.Token)),
		attrEntityType:   s("TOKEN"),
		"userId":         s(t.UserID),
		"token":          s(t.Token),
		"expiresAt":      s(t.ExpiresAt.Format(time.RFC3339Nano)),
		"expiresAtEpoch": &types.AttributeValueMemberN{Value: strconv.FormatInt(t.ExpiresAt.Unix(), 10)},
		attrGSI1PK:       s(gsi1Token),
		attrGSI1SK:       s(t.Token),
	}
}

func tokenFromItem(item map[string]types.AttributeValue) *entity.AuthToken {
	userID := getS(item, "userId")
	token := getS(item, "token")
	if userID == "" || token == "" {
		return nil
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, getS(item, "expiresAt"))
	if err != nil {
		return nil
	}
	return &entity.AuthToken{UserID: userID, Token: token, ExpiresAt: expiresAt}
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
