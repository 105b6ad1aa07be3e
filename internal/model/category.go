package model

// BucketCount is the number of catalog products normalized into one bucket.
type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}
