package adapters

import (
	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	s3svc "github.com/de-tools/aws-profile-manager/pkg/services/s3"
)

func MapBucketsSvcToApi(buckets []s3svc.Bucket) []api.Bucket {
	mapped := make([]api.Bucket, 0, len(buckets))
	for _, b := range buckets {
		mapped = append(mapped, api.Bucket{Name: b.Name, Created: b.Created})
	}
	return mapped
}

func MapObjectPageSvcToApi(page *s3svc.ObjectPage) api.ObjectPage {
	mapped := api.ObjectPage{
		Bucket:            page.Bucket,
		Prefix:            page.Prefix,
		Objects:           make([]api.Object, 0, len(page.Objects)),
		Truncated:         page.Truncated,
		ContinuationToken: page.ContinuationToken,
	}
	for _, obj := range page.Objects {
		mapped.Objects = append(mapped.Objects, api.Object{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return mapped
}
