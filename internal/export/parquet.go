package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// cloudParquetFile adapts a CloudWriter to the source.ParquetFile interface.
// Cloud objects are write-only: reads and seek-from-end are not supported.
type cloudParquetFile struct {
	cloudWriter CloudWriter
	offset      int64
}

func newCloudParquetFile(w CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: w}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func writeParquet(fw source.ParquetFile, rows []ReportRow) error {
	pw, err := writer.NewParquetWriter(fw, new(ReportRow), 4)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	for _, r := range rows {
		if err := pw.Write(r); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return fw.Close()
}

// WriteParquet writes rows to a local parquet file.
func WriteParquet(path string, rows []ReportRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	return writeParquet(fw, rows)
}

// WriteParquetS3 writes rows as a parquet object in the given bucket.
func WriteParquetS3(region, bucket, objectPath string, rows []ReportRow) error {
	cw, err := NewS3Writer(context.Background(), region, bucket, objectPath)
	if err != nil {
		return fmt.Errorf("failed to create cloud file writer: %w", err)
	}
	return writeParquet(newCloudParquetFile(cw), rows)
}
