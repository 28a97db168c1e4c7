// Package domain defines the core course entities (lessons, plans, quizzes,
// transcript segments), the pagination rules applied to a cached plan, and the
// error taxonomy shared by the service and API layers.
package domain
