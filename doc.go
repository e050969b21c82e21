// Package swaggerui mounts a pre-built Swagger UI inside a host router.
//
// Register adds two routes to a chi-compatible router: the documentation page
// at the mount URI, and a catch-all sink below it that serves the viewer's
// static assets. The page is rendered from an html/template with a context
// built once at registration. UI options are merged over DefaultConfig and
// embedded in the page as JSON; the identity fields (app_name, client_realm,
// client_id, client_secret) are kept out of the JSON and rendered as HTML
// attributes instead.
//
//	r := chi.NewRouter()
//	err := swaggerui.Register(r, "/docs", "/openapi.yaml",
//	    swaggerui.WithPageTitle("Inventory API"),
//	    swaggerui.WithConfig(map[string]any{"docExpansion": "list"}),
//	)
//
// Assets are embedded in the binary by default. WithStaticDir serves them from
// a directory on disk instead, and WithAssets swaps in any fs.FS.
package swaggerui
