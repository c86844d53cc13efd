package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alfredjeanlab/edgebin/internal/model"
	"github.com/alfredjeanlab/edgebin/internal/ui"
)

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func renderStatus(s model.RunStatus) string {
	if s == model.RunSucceeded {
		return ui.RenderPass(s.String())
	}
	return ui.RenderFail(s.String())
}

func printRunTable(w io.Writer, run *model.Run) {
	fmt.Fprintf(w, "Run:         %s\n", run.ID)
	fmt.Fprintf(w, "Input:       %s\n", run.Input)
	fmt.Fprintf(w, "Output:      %s\n", run.Output)
	fmt.Fprintf(w, "Records:     %d\n", run.Records)
	fmt.Fprintf(w, "Comments:    %d\n", run.Comments)
	if run.Undirected {
		fmt.Fprintf(w, "Duplicates:  %d\n", run.Duplicates)
	}
	fmt.Fprintf(w, "Bytes:       %d\n", run.Bytes)
	fmt.Fprintf(w, "Byte Order:  %s\n", run.ByteOrder)
	fmt.Fprintf(w, "Status:      %s\n", renderStatus(run.Status))
	if run.Error != "" {
		fmt.Fprintf(w, "Error:       %s\n", run.Error)
	}
	if run.UploadURI != "" {
		fmt.Fprintf(w, "Upload:      %s\n", run.UploadURI)
	}
	fmt.Fprintf(w, "Duration:    %s\n", ui.RenderMuted(run.Duration().String()))
}

func printRunList(w io.Writer, runs []*model.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tRECORDS\tBYTES\tSTARTED\tINPUT")
	for _, r := range runs {
		input := r.Input
		if len(input) > 50 {
			input = "..." + input[len(input)-47:]
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID,
			r.Status,
			r.Records,
			r.Bytes,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			input,
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func printInfoTable(w io.Writer, info *fileInfo) {
	fmt.Fprintf(w, "File:        %s\n", info.Path)
	fmt.Fprintf(w, "Bytes:       %d\n", info.Bytes)
	fmt.Fprintf(w, "Records:     %d\n", info.Records)
	fmt.Fprintf(w, "Byte Order:  %s\n", info.ByteOrder)
	if len(info.Head) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSRC\tDST")
	for i, e := range info.Head {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", i, e.Src, e.Dst)
	}
	tw.Flush()
}
