package dynamodb

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// Single-table key layout. The prefixes and attribute names are part of the
// storage contract; changing them breaks compatibility with existing tables.
const (
	attrPK         = "pk"
	attrSK         = "sk"
	attrEntityType = "entityType"
	attrGSI1PK     = "gsi1pk"
	attrGSI1SK     = "gsi1sk"

	userKeyPrefix  = "USER#"
	tokenKeyPrefix = "TOKEN#"
	skMetadata     = "METADATA"

	// GSI1 partition values: constant per lookup path so the sort key
	// carries the looked-up value.
	gsi1UserEmail = "USER_EMAIL"
	gsi1Token     = "TOKEN"

	gsi1IndexName = "GSI1"

	// tokenIDLen is how much of the token string forms the sort key.
	tokenIDLen = 8
)

func userPK(id string) string { return userKeyPrefix + id }

func tokenSK(token string) string {
	if len(token) > tokenIDLen {
		token = token[:tokenIDLen]
	}
	return tokenKeyPrefix + token
}

func s(v string) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: v}
}

// getS extracts a string attribute; missing or non-string attributes
// yield "".
func getS(item map[string]types.AttributeValue, key string) string {
	if av, ok := item[key].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}
