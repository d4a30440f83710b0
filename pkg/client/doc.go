// Package client is a Go client for the notetodo REST API.
//
// A Client performs unauthenticated calls (register, login). Both return a
// Session that carries the bearer token and the signed-in identity and
// exposes one method per authenticated route:
//
//	c := client.New("http://localhost:8080/api")
//	s, err := c.Login(ctx, "alice", "s3cret!")
//	if err != nil {
//		return err
//	}
//	notes, err := s.ListNotes(ctx)
//
// Every method returns the server's envelope. Failed calls also return an
// *APIError that matches the package's sentinel errors with errors.Is.
// A Session is cleared by Logout and by any 401 response; later calls on a
// cleared Session fail with ErrNoSession.
package client
