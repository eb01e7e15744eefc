// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/workflow, domain/notes,
// domain/cafeteria, ...). This root package holds sentinel errors, validation
// types, and the actor identity carried through every mutating operation.
package domain
