// Package pachca is a typed client for the Pachca API, generated from
// api/openapi.yaml.
//
//	c := pachca.NewClient(os.Getenv("PACHCA_TOKEN"))
//	resp, err := c.GetStatus(ctx)
//
// Operations that document a single payload type return it directly;
// the others return any, holding a pointer to the model of the status
// that was received. The Detailed variants also expose the status code,
// headers and raw body.
package pachca

//go:generate go run ../cmd/pachcagen generate --input ../api/openapi.yaml --out . --module github.com/pachca/pachcagen/pachca --force
