package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imrishuroy/novamart/internal/aws"
)

// ErrNotArchived is returned when a status update targets an order missing from the archive.
var ErrNotArchived = errors.New("order not archived")

// ArchivedItem is one line of an archived order.
type ArchivedItem struct {
	ProductID string `dynamodbav:"product_id"`
	Name      string `dynamodbav:"name"`
	Category  string `dynamodbav:"category"`
	Price     string `dynamodbav:"price"`
	Quantity  int    `dynamodbav:"quantity"`
}

// ArchivedOrder is the item stored in the orders DynamoDB table.
type ArchivedOrder struct {
	OrderID        string         `dynamodbav:"order_id"` // PK
	SessionID      string         `dynamodbav:"session_id,omitempty"`
	UserID         string         `dynamodbav:"user_id"`
	Status         string         `dynamodbav:"status"`
	Total          string         `dynamodbav:"total"`
	Items          []ArchivedItem `dynamodbav:"items"`
	TrackingNumber string         `dynamodbav:"tracking_number"`
	PlacedAt       time.Time      `dynamodbav:"placed_at"`
	UpdatedAt      time.Time      `dynamodbav:"updated_at"`
	StatusAt       int64          `dynamodbav:"status_at"` // unix nanos of the last applied status
}

// NewArchivedOrder converts an order snapshot into its table representation.
func NewArchivedOrder(sessionID string, o Order) ArchivedOrder {
	items := make([]ArchivedItem, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, ArchivedItem{
			ProductID: l.ID,
			Name:      l.Name,
			Category:  string(l.Category),
			Price:     l.Price.String(),
			Quantity:  l.Quantity,
		})
	}
	return ArchivedOrder{
		OrderID:        o.ID,
		SessionID:      sessionID,
		UserID:         o.UserID,
		Status:         string(o.Status),
		Total:          o.Total.StringFixed(2),
		Items:          items,
		TrackingNumber: o.TrackingNumber,
		PlacedAt:       o.Date,
		StatusAt:       o.Date.UnixNano(),
	}
}

// Archive is a write-mostly export of placed orders in DynamoDB.
type Archive struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewArchive creates a new orders Archive.
func NewArchive(client aws.DynamoDBAPI, tableName string) *Archive {
	return &Archive{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Put stores the order unless it is already archived. Redelivered events are
// therefore harmless: a conditional failure is treated as success.
func (s *Archive) Put(ctx context.Context, rec ArchivedOrder) error {
	rec.UpdatedAt = s.nowFunc().UTC()
	if rec.PlacedAt.IsZero() {
		rec.PlacedAt = rec.UpdatedAt
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal order item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(order_id)"),
	})
	if err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			return nil
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get fetches an archived order by order_id. Returns (nil, nil) if not found.
func (s *Archive) Get(ctx context.Context, orderID string) (*ArchivedOrder, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec ArchivedOrder
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &rec, nil
}

// updateStatusCondition applies a status only if it is newer than the stored one.
const updateStatusCondition = "attribute_exists(order_id) AND (attribute_not_exists(status_at) OR status_at < :at)"

// UpdateStatus applies status as of at. Any transition is accepted, but a
// change older than the stored one is skipped and reported as not applied.
// ErrNotArchived is returned when the order was never stored.
func (s *Archive) UpdateStatus(ctx context.Context, orderID string, status Status, at time.Time) (bool, error) {
	now := s.nowFunc().UTC()
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:         awsString("SET #s = :new, status_at = :at, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new": &types.AttributeValueMemberS{Value: string(status)},
			":at":  &types.AttributeValueMemberN{Value: strconv.FormatInt(at.UnixNano(), 10)},
			":ua":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
		},
		ConditionExpression: awsString(updateStatusCondition),
	}

	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var cf *types.ConditionalCheckFailedException
		if !errors.As(err, &cf) {
			return false, fmt.Errorf("update item: %w", err)
		}
		// missing order or stale change
		rec, err := s.Get(ctx, orderID)
		if err != nil {
			return false, err
		}
		if rec == nil {
			return false, fmt.Errorf("%w: %s", ErrNotArchived, orderID)
		}
		return false, nil
	}
	return true, nil
}

func awsString(s string) *string { return &s }
