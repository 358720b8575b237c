package storage

import (
	gcs "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// PublicRead is a blob.WriterOptions BeforeWrite hook that grants anonymous
// read access to the written object on S3 and GCS.  Azure access is set on
// the container, so nothing happens there.
func PublicRead(as func(any) bool) error {
	var putInput *s3.PutObjectInput
	if as(&putInput) {
		putInput.ACL = s3types.ObjectCannedACLPublicRead
		return nil
	}
	var gcsWriter *gcs.Writer
	if as(&gcsWriter) {
		gcsWriter.PredefinedACL = "publicRead"
	}
	return nil
}
