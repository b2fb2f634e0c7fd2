// Package schema describes the shape of request DTOs independently of any
// routing concern. A Schema is a named, ordered list of fields with their
// types and constraints; a Catalogue is the name-keyed collection of schemas
// shared by request validation and OpenAPI generation.
//
// Schemas can be declared by hand:
//
//	createUser := schema.Of[CreateUser]("CreateUserDto",
//	    schema.String("email").Require().WithFormat(schema.FormatEmail),
//	    schema.String("name").Require().MinLen(3),
//	)
//
// derived from a Go struct's tags:
//
//	s, err := schema.Reflect[CreateUser]("CreateUserDto")
//
// or loaded from a YAML catalogue file with LoadCatalogue.
package schema
