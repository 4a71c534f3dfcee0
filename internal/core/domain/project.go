package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is a container for tasks, owned exclusively by the account that
// created it. Records not owned by the caller are reported as absent.
type Project struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	OwnerSubject string    `json:"owner_subject" bson:"owner_subject"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
