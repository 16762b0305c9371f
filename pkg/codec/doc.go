// Package codec provides request body parsers for five.
//
// Each parser has the five.ParseFunc signature and is registered per media
// type. JSON is registered by default; the others are opt-in:
//
//	app := five.New(
//	    five.WithParser(codec.MIMEApplicationYAML, codec.YAML),
//	    five.WithParser(codec.MIMEApplicationForm, codec.Form),
//	)
//
// Registering a parser also allows its media type for request bodies.
package codec
