// Package storage provides the relational database handle, the Redis
// cache client, and the in-process parsed-collection cache shared by the
// service layer.
package storage
