package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var (
	s3Session  *session.Session
	uploader   *s3manager.Uploader
	useS3      bool
	archiveDir string
)

// InitStorage initializes either S3 or local storage for receipt archives
// based on configuration.
func InitStorage() error {
	// Try to initialize S3
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(
				awsAccessKey,
				awsSecretKey,
				"", // Token (optional)
			),
		})
		if err != nil {
			return fmt.Errorf("failed to create AWS session: %v", err)
		}

		s3Session = sess
		uploader = s3manager.NewUploader(sess)
		useS3 = true

		fmt.Println("✅ AWS S3 storage initialized successfully")
		return nil
	}

	// Fallback to local storage
	useS3 = false
	archiveDir = os.Getenv("RECEIPT_ARCHIVE_DIR")
	if archiveDir == "" {
		archiveDir = "/app/receipts"
	}

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create receipt archive directory: %v", err)
	}

	fmt.Println("⚠️  AWS S3 not configured. Using local receipt archive (not recommended for production)")
	return nil
}

// ArchiveReceiptPDF stores a copy of a generated receipt outside the
// database, keyed by waybill number. Archive failures should not fail
// shipment creation; callers log and continue.
func ArchiveReceiptPDF(waybillNumber string, pdf []byte) error {
	if useS3 {
		return archiveToS3(waybillNumber, pdf)
	}
	return archiveLocally(waybillNumber, pdf)
}

func archiveToS3(waybillNumber string, pdf []byte) error {
	bucketName := os.Getenv("AWS_S3_BUCKET")
	if bucketName == "" {
		return fmt.Errorf("S3 bucket name not configured")
	}

	key := fmt.Sprintf("receipts/%s.pdf", waybillNumber)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload receipt to S3: %v", err)
	}
	return nil
}

func archiveLocally(waybillNumber string, pdf []byte) error {
	path := filepath.Join(archiveDir, waybillNumber+".pdf")
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write receipt archive: %v", err)
	}
	return nil
}
