// Package services holds the development backend's business logic: demo
// account login and token checks, and chat bookkeeping with echo replies.
package services
