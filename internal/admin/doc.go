// Package admin provides the back-office: login, dashboard, entity pages
// and the JSON content management API.
//
// Pages sit behind the page middleware (redirect to login), the API behind
// the API middleware (401 JSON). Both admin roles manage content; deletes
// additionally require the super_admin role.
package admin
