package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// WalletExporter persists a wallet snapshot and returns where it was written.
type WalletExporter interface {
	Export(ctx context.Context, at time.Time, overview *WalletOverview) (string, error)
}

// S3WalletExporter uploads wallet snapshots as CSV objects.
type S3WalletExporter struct {
	client *s3.Client
	bucket string
}

func NewS3WalletExporter(client *s3.Client, bucket string) *S3WalletExporter {
	return &S3WalletExporter{client: client, bucket: bucket}
}

func (e *S3WalletExporter) Export(ctx context.Context, at time.Time, overview *WalletOverview) (string, error) {
	body, err := EncodeWalletCSV(overview)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("wallet/%s/wallet-%s.csv", at.Format("2006/01"), at.Format("20060102T150405"))
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload wallet export to s3://%s/%s: %w", e.bucket, key, err)
	}
	return key, nil
}

// EncodeWalletCSV renders a header and one line per entitlement.
func EncodeWalletCSV(overview *WalletOverview) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"account_id", "email", "plan_id", "amount_paid", "currency", "phone_number", "status", "starts_at", "expires_at", "expired"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range overview.Rows {
		e := row.Entitlement
		rec := []string{
			e.AccountID,
			e.Email,
			e.PlanID,
			strconv.FormatInt(e.AmountPaid, 10),
			e.Currency,
			e.PhoneNumber,
			string(e.Status),
			e.StartsAt.Format(time.RFC3339),
			e.ExpiresAt.Format(time.RFC3339),
			strconv.FormatBool(row.Expired),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode wallet csv: %w", err)
	}
	return buf.Bytes(), nil
}
