package storage

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"freshsilver-api/internal/models"
)

// messageItem is the DynamoDB shape of a chat message. The table is keyed by
// pk (constant partition) and sk (the message id) and has TTL enabled on ttl.
type messageItem struct {
	PK        string     `dynamodbav:"pk"`
	SK        string     `dynamodbav:"sk"`
	ID        string     `dynamodbav:"id"`
	Text      string     `dynamodbav:"text"`
	Author    string     `dynamodbav:"author"`
	Color     string     `dynamodbav:"color"`
	Timestamp itemNumber `dynamodbav:"timestamp"`
	TTL       itemNumber `dynamodbav:"ttl"`
}

// rsvpItem is the DynamoDB shape of an RSVP, keyed by eventId and visitorId
type rsvpItem struct {
	EventID   string     `dynamodbav:"eventId"`
	VisitorID string     `dynamodbav:"visitorId"`
	ID        string     `dynamodbav:"id"`
	Name      string     `dynamodbav:"name"`
	Color     string     `dynamodbav:"color"`
	Timestamp itemNumber `dynamodbav:"timestamp"`
}

// itemNumber is an epoch number attribute. Items written by other clients
// may carry a fractional value; it is truncated rather than failing the whole
// page.
type itemNumber int64

// UnmarshalDynamoDBAttributeValue implements dynamodbattribute.Unmarshaler
func (n *itemNumber) UnmarshalDynamoDBAttributeValue(av *dynamodb.AttributeValue) error {
	if av == nil || aws.BoolValue(av.NULL) {
		*n = 0
		return nil
	}
	if av.N == nil {
		return fmt.Errorf("expected a number attribute")
	}

	number := dynamodbattribute.Number(*av.N)
	if i, err := number.Int64(); err == nil {
		*n = itemNumber(i)
		return nil
	}

	f, err := number.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return fmt.Errorf("number %q is out of range", *av.N)
	}
	*n = itemNumber(math.Trunc(f))
	return nil
}

// DynamoDBStore implements Store on two DynamoDB tables
type DynamoDBStore struct {
	client        dynamodbiface.DynamoDBAPI
	messagesTable string
	rsvpTable     string
}

// NewDynamoDBClient creates a DynamoDB client for region. A non-empty endpoint
// points the client at dynamodb-local or another compatible service.
func NewDynamoDBClient(region, endpoint string) (dynamodbiface.DynamoDBAPI, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return dynamodb.New(sess), nil
}

// NewDynamoDBStore creates a new DynamoDBStore
func NewDynamoDBStore(client dynamodbiface.DynamoDBAPI, messagesTable, rsvpTable string) (*DynamoDBStore, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamodb client is required")
	}
	if messagesTable == "" || rsvpTable == "" {
		return nil, fmt.Errorf("both messages and rsvp table names are required")
	}

	return &DynamoDBStore{
		client:        client,
		messagesTable: messagesTable,
		rsvpTable:     rsvpTable,
	}, nil
}

// PutMessage implements MessageStore.PutMessage
func (s *DynamoDBStore) PutMessage(ctx context.Context, msg *models.ChatMessage) error {
	item, err := dynamodbattribute.MarshalMap(messageItem{
		PK:        models.MessagePartition,
		SK:        msg.ID,
		ID:        msg.ID,
		Text:      msg.Text,
		Author:    msg.Author,
		Color:     msg.Color,
		Timestamp: itemNumber(msg.Timestamp),
		TTL:       itemNumber(msg.TTL),
	})
	if err != nil {
		return NewStorageError("PutMessage", msg.ID, err, false)
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.messagesTable),
		Item:      item,
	})
	if err != nil {
		return classifyAWSError("PutMessage", msg.ID, err)
	}

	return nil
}

// RecentMessages implements MessageStore.RecentMessages with a single
// descending query on the message partition
func (s *DynamoDBStore) RecentMessages(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.messagesTable),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pk": {S: aws.String(models.MessagePartition)},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int64(int64(limit))
	}

	out, err := s.client.QueryWithContext(ctx, input)
	if err != nil {
		return nil, classifyAWSError("RecentMessages", models.MessagePartition, err)
	}

	var items []messageItem
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, NewStorageError("RecentMessages", models.MessagePartition, fmt.Errorf("%w: %v", ErrInvalidData, err), false)
	}

	messages := make([]*models.ChatMessage, 0, len(items))
	for _, item := range items {
		messages = append(messages, &models.ChatMessage{
			ID:        item.ID,
			Text:      item.Text,
			Author:    item.Author,
			Color:     item.Color,
			Timestamp: int64(item.Timestamp),
			TTL:       int64(item.TTL),
		})
	}

	return messages, nil
}

// PutRsvp implements RsvpStore.PutRsvp. PutItem replaces any existing item
// with the same key, so the last write wins.
func (s *DynamoDBStore) PutRsvp(ctx context.Context, entry *models.RsvpEntry) error {
	item, err := dynamodbattribute.MarshalMap(rsvpItem{
		EventID:   entry.EventID,
		VisitorID: entry.VisitorID,
		ID:        entry.ID,
		Name:      entry.Name,
		Color:     entry.Color,
		Timestamp: itemNumber(entry.Timestamp),
	})
	if err != nil {
		return NewStorageError("PutRsvp", entry.ID, err, false)
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.rsvpTable),
		Item:      item,
	})
	if err != nil {
		return classifyAWSError("PutRsvp", entry.ID, err)
	}

	return nil
}

// ListRsvps implements RsvpStore.ListRsvps, following pagination until the
// event partition is exhausted
func (s *DynamoDBStore) ListRsvps(ctx context.Context, eventID string) ([]*models.RsvpEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.rsvpTable),
		KeyConditionExpression: aws.String("eventId = :eventId"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":eventId": {S: aws.String(eventID)},
		},
	}

	entries := []*models.RsvpEntry{}
	for {
		out, err := s.client.QueryWithContext(ctx, input)
		if err != nil {
			return nil, classifyAWSError("ListRsvps", eventID, err)
		}

		var items []rsvpItem
		if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, NewStorageError("ListRsvps", eventID, fmt.Errorf("%w: %v", ErrInvalidData, err), false)
		}

		for _, item := range items {
			entries = append(entries, &models.RsvpEntry{
				EventID:   item.EventID,
				VisitorID: item.VisitorID,
				ID:        item.ID,
				Name:      item.Name,
				Color:     item.Color,
				Timestamp: int64(item.Timestamp),
			})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return entries, nil
}

// DeleteRsvp implements RsvpStore.DeleteRsvp. DynamoDB does not fail when the
// key is absent.
func (s *DynamoDBStore) DeleteRsvp(ctx context.Context, eventID, visitorID string) error {
	_, err := s.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.rsvpTable),
		Key: map[string]*dynamodb.AttributeValue{
			"eventId":   {S: aws.String(eventID)},
			"visitorId": {S: aws.String(visitorID)},
		},
	})
	if err != nil {
		return classifyAWSError("DeleteRsvp", models.RsvpID(eventID, visitorID), err)
	}

	return nil
}

// Close implements Store.Close
func (s *DynamoDBStore) Close() error {
	return nil
}

// classifyAWSError wraps an AWS error, marking throttling and server side
// failures as retryable
func classifyAWSError(op, key string, err error) *StorageError {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return NewStorageError(op, key, err, false)
	}

	switch aerr.Code() {
	case dynamodb.ErrCodeProvisionedThroughputExceededException,
		"RequestLimitExceeded",
		"ThrottlingException":
		return NewStorageError(op, key, fmt.Errorf("%w: %s", ErrThrottled, aerr.Message()), true)
	case dynamodb.ErrCodeInternalServerError, "ServiceUnavailable":
		return NewStorageError(op, key, fmt.Errorf("%w: %s", ErrStorageUnavailable, aerr.Message()), true)
	}

	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) && reqErr.StatusCode() >= 500 {
		return NewStorageError(op, key, err, true)
	}

	return NewStorageError(op, key, err, false)
}
