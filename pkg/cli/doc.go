/*
Package cli provides command-line interface utilities for the pagecraft
command.

Output Formatting:

Command results render in text, JSON, or CSV. Results that implement
TextMarshaler control their own text rendering; CSV output requires
CSVMarshaler:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
