package conductor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func traceRequest(w io.Writer, method, url string, body *string) {
	fmt.Fprintf(w, "Sending [%s] request to Conductor Server (%s):\n", cyan(method), url)
	if body != nil {
		fmt.Fprintln(w, "Body:")
		fmt.Fprintln(w, *body)
	}
	fmt.Fprint(w, "\n\n")
}

func traceResponse(w io.Writer, host string, resp Response) {
	status := strconv.Itoa(resp.Status)
	if resp.OK() {
		status = green(status)
	} else {
		status = red(status)
	}

	fmt.Fprintf(w, "Received response from Conductor Server (%s):\n", host)
	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintln(w, resp.Body)
	fmt.Fprint(w, "\n\n")
}
