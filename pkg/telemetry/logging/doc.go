// Package logging provides structured logging for Callisto built on
// log/slog.
//
// The Logger wraps slog with two additions: context field extraction
// (request_id, template_id, operation) and optional redaction of contact
// details. Substitution value maps carry customer phone numbers and email
// addresses, so redaction is on by default in the server configuration.
//
// Typical usage:
//
//	logger, err := logging.New(logging.Config{
//	    Level:        "info",
//	    Format:       "json",
//	    RedactValues: true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	logger.Info("template loaded", "template_id", "landing-01", "placeholders", 12)
//
// With a request context:
//
//	ctx = logging.WithRequestID(ctx, requestID)
//	ctx = logging.WithTemplateID(ctx, templateID)
//	logger.InfoContext(ctx, "extraction complete", "count", count)
package logging
