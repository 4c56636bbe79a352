// Package company implements multi-tenant company management: company
// CRUD, membership with roles, and email invitations with expiry.
package company
