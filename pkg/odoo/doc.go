// Package odoo provides a minimal client for the Odoo JSON-RPC gateway.
//
// Every remote call is one blocking HTTP POST to <baseURL>/jsonrpc. The
// client wraps the three "services" the gateway exposes: common (version,
// login, authenticate), db (database administration, keyed on a per-call
// master password) and object (generic model execution). On top of
// ExecuteKw it layers the usual ORM verbs.
//
// Usage:
//
//	client, err := odoo.New(baseURL, "production",
//		odoo.Credentials{Username: "admin", Password: secret},
//		odoo.WithTimeout(30*time.Second))
//	ids, err := client.Search(ctx, "res.partner",
//		odoo.Domain{[]any{"email", "=ilike", "%@example.com"}},
//		odoo.WithLimit(10), odoo.WithOrder("create_date desc"))
//	records, err := client.Read(ctx, "res.partner", ids, odoo.WithFields("name", "email"))
//
// The user id is resolved lazily via common.authenticate on the first
// model-execution call and cached for the life of the client. Failures are
// one of three kinds: *ConnectionError, *AuthenticationError or *RPCError;
// see the Is* predicates.
package odoo
