package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/reelverdict/internal/clients"
	"github.com/spacesedan/reelverdict/internal/models"
)

const (
	MAX_BATCH_SIZE = 25
	VERDICT_TTL    = 24 * time.Hour
)

var ErrVerdictNotFound = errors.New("verdict not found")

// DynamoDBAPI is the subset of *dynamodb.Client the verdict store uses.
type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

type VerdictStore struct {
	client  DynamoDBAPI
	table   string
	backoff time.Duration
	now     func() time.Time
}

func NewVerdictStore(client DynamoDBAPI, table string) *VerdictStore {
	return &VerdictStore{
		client:  client,
		table:   table,
		backoff: clients.INITIAL_BACKOFF,
		now:     time.Now,
	}
}

// BatchInsertVerdicts writes records in batches of 25, retrying unprocessed
// items with exponential backoff.
func (s *VerdictStore) BatchInsertVerdicts(ctx context.Context, records []models.VerdictRecord) error {
	expiresAt := s.now().Add(VERDICT_TTL)

	for i := 0; i < len(records); i += MAX_BATCH_SIZE {
		if err := ctx.Err(); err != nil {
			slog.Warn("[DynamoDB] context canceled")
			return err
		}

		end := min(i+MAX_BATCH_SIZE, len(records))
		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, record := range records[i:end] {
			item, err := VerdictToItem(record, expiresAt)
			if err != nil {
				return err
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := s.writeBatch(ctx, writeRequests); err != nil {
			return err
		}
	}

	slog.Info("[DynamoDB] Successfully stored verdicts",
		slog.Int("count", len(records)),
		slog.String("table", s.table))
	return nil
}

func (s *VerdictStore) writeBatch(ctx context.Context, writeRequests []types.WriteRequest) error {
	out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			s.table: writeRequests,
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write verdicts: %w", err)
	}

	retryCount := 0
	backoff := s.backoff
	for len(out.UnprocessedItems) > 0 && retryCount < clients.MAX_RETRIES {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed verdicts...",
			slog.Int("attempt", retryCount+1),
			slog.Int("remaining", len(out.UnprocessedItems[s.table])))

		out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Retry error %w", err)
		}
		retryCount++
	}

	if remaining := len(out.UnprocessedItems[s.table]); remaining > 0 {
		slog.Error("[DynamoDB] Some verdicts failed after retries",
			slog.Int("remaining", remaining))
		return fmt.Errorf("[DynamoDB] %d verdicts left unprocessed", remaining)
	}
	return nil
}

// VerdictToItem marshals a record and adds the scored_at and expires_at
// epoch attributes.
func VerdictToItem(record models.VerdictRecord, expiresAt time.Time) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal verdict %s: %w", record.MovieID, err)
	}

	item["scored_at"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(record.ScoredAt.Unix(), 10)}
	item["expires_at"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(expiresAt.Unix(), 10)}
	return item, nil
}

func (s *VerdictStore) GetVerdict(ctx context.Context, movieID string) (models.VerdictRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"movie_id": &types.AttributeValueMemberS{Value: movieID},
		},
	})
	if err != nil {
		return models.VerdictRecord{}, fmt.Errorf("[DynamoDB] GetItem %s failed: %w", movieID, err)
	}
	if len(out.Item) == 0 {
		return models.VerdictRecord{}, ErrVerdictNotFound
	}

	var record models.VerdictRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return models.VerdictRecord{}, fmt.Errorf("[DynamoDB] Unable to unmarshal verdict %s: %w", movieID, err)
	}
	if n, ok := out.Item["scored_at"].(*types.AttributeValueMemberN); ok {
		if sec, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			record.ScoredAt = time.Unix(sec, 0).UTC()
		}
	}
	return record, nil
}
