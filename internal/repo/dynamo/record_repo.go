package dynamo

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/steveyiyo/tts-clone-backend/internal/store"
	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

// TableConfig is parsed from dynamodb://<table>?region=<r>&endpoint=<url>.
type TableConfig struct {
	TableName string
	Region    string
	Endpoint  string
}

func ParseURI(raw string) (*TableConfig, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse dynamodb uri")
	}
	if u.Scheme != "dynamodb" {
		return nil, errors.Errorf("unexpected scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("dynamodb uri must name a table")
	}
	q := u.Query()
	return &TableConfig{
		TableName: u.Host,
		Region:    q.Get("region"),
		Endpoint:  q.Get("endpoint"),
	}, nil
}

type audioItem struct {
	ID        string    `dynamodbav:"id"`
	Text      string    `dynamodbav:"text"`
	Language  string    `dynamodbav:"language"`
	Voice     string    `dynamodbav:"voice"`
	URL       string    `dynamodbav:"url"`
	Timestamp time.Time `dynamodbav:"timestamp"`
	Status    string    `dynamodbav:"status"`
}

type RecordRepo struct {
	svc dynamodbiface.DynamoDBAPI
	cfg *TableConfig
}

func NewRecordRepo(svc dynamodbiface.DynamoDBAPI, cfg *TableConfig) *RecordRepo {
	return &RecordRepo{svc: svc, cfg: cfg}
}

// NewClient builds a DynamoDB client from the shared AWS config, with the
// region and endpoint from cfg taking precedence.
func NewClient(cfg *TableConfig, timeout time.Duration) (*dynamodb.DynamoDB, error) {
	awsCfg := aws.Config{HTTPClient: &http.Client{Timeout: timeout}}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            awsCfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}
	return dynamodb.New(sess), nil
}

func (r *RecordRepo) Name() string { return "dynamodb" }

func (r *RecordRepo) Insert(ctx context.Context, rec types.SynthesisRecord) store.Result {
	item := audioItem{
		ID:        uuid.NewString(),
		Text:      rec.Text,
		Language:  rec.Language,
		Voice:     rec.Voice,
		URL:       rec.URL,
		Timestamp: rec.Timestamp,
		Status:    string(rec.Status),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return store.Down(errors.Wrap(err, "marshal audio item"))
	}
	_, err = r.svc.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.cfg.TableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return store.Down(errors.Wrap(err, "put audio item"))
	}
	return store.Stored(item.ID)
}

func (r *RecordRepo) Find(ctx context.Context, id string) store.Result {
	out, err := r.svc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.cfg.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return store.Down(errors.Wrap(err, "get audio item"))
	}
	if len(out.Item) == 0 {
		return store.Missing()
	}
	var item audioItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return store.Down(errors.Wrap(err, "unmarshal audio item"))
	}
	return store.Found(types.SynthesisRecord{
		ID:        item.ID,
		Text:      item.Text,
		Language:  item.Language,
		Voice:     item.Voice,
		URL:       item.URL,
		Timestamp: item.Timestamp.UTC(),
		Status:    types.Status(item.Status),
	})
}

func (r *RecordRepo) Close(context.Context) error { return nil }
