package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (m *mockSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, in)
	return &sqs.SendMessageOutput{}, nil
}

type mockCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.inputs = append(m.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestPublisher_SendMessage(t *testing.T) {
	mock := &mockSQS{}
	p := NewPublisher(mock, "https://sqs.local/queue")

	err := p.SendMessage(context.Background(), `{"order_id":"o1"}`, map[string]string{
		"order_id":       "o1",
		"correlation_id": "",
	})
	require.NoError(t, err)
	require.Len(t, mock.inputs, 1)

	in := mock.inputs[0]
	assert.Equal(t, "https://sqs.local/queue", *in.QueueUrl)
	assert.Equal(t, `{"order_id":"o1"}`, *in.MessageBody)
	require.Contains(t, in.MessageAttributes, "order_id")
	assert.Equal(t, "o1", *in.MessageAttributes["order_id"].StringValue)
	assert.NotContains(t, in.MessageAttributes, "correlation_id")
}

func TestPublisher_SendMessageError(t *testing.T) {
	p := NewPublisher(&mockSQS{err: errors.New("boom")}, "q")
	err := p.SendMessage(context.Background(), "{}", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send message")
}

func TestMetrics_Put(t *testing.T) {
	mock := &mockCloudWatch{}
	m := NewMetrics(mock, "NovaMart")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.nowFunc = func() time.Time { return fixed }

	err := m.Put(context.Background(), "OrderRevenue", 20, cwtypes.StandardUnitNone, map[string]string{"Status": "Processing"})
	require.NoError(t, err)
	require.Len(t, mock.inputs, 1)

	in := mock.inputs[0]
	assert.Equal(t, "NovaMart", *in.Namespace)
	require.Len(t, in.MetricData, 1)
	d := in.MetricData[0]
	assert.Equal(t, "OrderRevenue", *d.MetricName)
	assert.Equal(t, 20.0, *d.Value)
	assert.Equal(t, fixed, *d.Timestamp)
	require.Len(t, d.Dimensions, 1)
	assert.Equal(t, "Status", *d.Dimensions[0].Name)
}
