/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores
 * and retrieves data using Amazon S3. squashtd uses it to keep scraped draw
 * and results pages between runs so that re-validating a tournament doesn't
 * hammer the tournament site.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const DefaultPrefix = "s3cache"

// ObjectAPI is the subset of the S3 client the cache depends on.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Options struct {
	// Bucket is the name of the S3 bucket, e.g. "mybucket".
	Bucket string

	// Prefix is prepended to every object key; DefaultPrefix when empty.
	Prefix string

	// Gzip compresses entries on Set and decompresses them on Get. Object
	// keys get a ".gz" suffix.
	Gzip bool

	LogErrors bool
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Client is used for all S3 requests. Init() fills it in from the
	// default AWS configuration unless the caller already set one.
	Client ObjectAPI

	opts Options
	ctx  context.Context
}

// New returns a new Cache for the given options. Callers should invoke
// Init() on the returned Cache before use.
func New(ctx context.Context, opts Options) *Cache {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	opts.Prefix = strings.Trim(opts.Prefix, "/")

	return &Cache{
		opts: opts,
		ctx:  ctx,
	}
}

// Init loads the default AWS configuration (environment, then shared
// config and credentials files) when no Client was provided, and then
// checks that the bucket is reachable and listable.
func (c *Cache) Init() error {
	if c.opts.Bucket == "" {
		return fmt.Errorf("s3cache.init: no bucket configured")
	}
	if c.Client == nil {
		cfg, err := config.LoadDefaultConfig(c.ctx)
		if err != nil {
			return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
		}
		c.Client = s3.NewFromConfig(cfg)
	}

	if _, err := c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.opts.Bucket),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.opts.Bucket, err)
	}

	if _, err := c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.opts.Bucket),
		Prefix:  aws.String(c.opts.Prefix + "/"),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.opts.Bucket, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		// NoSuchKey is an ordinary miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logf("s3cache.get: failed to get object %v: %v", objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.opts.Gzip {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logf("s3cache.get: failed to open compressed object %v: %v",
				objKey, err)
			return nil, false
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: failed to read object %v: %v", objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores data in the cache under key.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.opts.Gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			c.logf("s3cache.set: failed to gzip data for %v: %v", objKey, err)
			return
		}
		if err := gw.Close(); err != nil {
			c.logf("s3cache.set: failed to close gzip writer for %v: %v",
				objKey, err)
			return
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: put failed for %v: %v", objKey, err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logf("s3cache.delete: delete failed for %v: %v", objKey, err)
	}
}

func (c *Cache) objectKey(key string) string {
	sum := md5.Sum([]byte(key))
	objKey := fmt.Sprintf("%v/%v", c.opts.Prefix, hex.EncodeToString(sum[:]))
	if c.opts.Gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logf(format string, args ...any) {
	if c.opts.LogErrors {
		log.Printf(format, args...)
	}
}
