package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/edgebin/internal/convert"
	"github.com/alfredjeanlab/edgebin/internal/edge"
)

// fileInfo summarizes a binary edge file.
type fileInfo struct {
	Path      string      `json:"path"`
	Bytes     int64       `json:"bytes"`
	Records   int64       `json:"records"`
	ByteOrder string      `json:"byte_order"`
	Head      []edge.Edge `json:"head"`
}

var infoCmd = &cobra.Command{
	Use:     "info <file>",
	Short:   "Show the record count and first records of a binary edge file",
	GroupID: "convert",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		head, _ := cmd.Flags().GetInt("head")

		orderName := cfg.ByteOrder
		if cmd.Flags().Changed("byte-order") {
			orderName, _ = cmd.Flags().GetString("byte-order")
		}
		order, err := edge.ParseByteOrder(orderName)
		if err != nil {
			return err
		}

		info, err := inspect(args[0], order, head)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(cmd.OutOrStdout(), info)
		} else {
			printInfoTable(cmd.OutOrStdout(), info)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().Int("head", 5, "number of leading records to show")
	infoCmd.Flags().String("byte-order", "", "record byte order: native, little or big (default from config)")
}

// inspect validates the size of the file at path and decodes up to head
// leading records.
func inspect(path string, order binary.ByteOrder, head int) (*fileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	count, err := edge.RecordCount(fi.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	info := &fileInfo{
		Path:      path,
		Bytes:     fi.Size(),
		Records:   count,
		ByteOrder: convert.ByteOrderName(order),
		Head:      []edge.Edge{},
	}
	rr := edge.NewRecordReader(f, order)
	for i := 0; i < head; i++ {
		e, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		info.Head = append(info.Head, e)
	}
	return info, nil
}
