// Package audit provides audit logging for lecture-eval write operations.
//
// Every state-changing request (user registration, lecturer creation,
// evaluation submission) produces an Event, written as an RFC5424 syslog
// line and, when AUDIT_DATABASE_URL is set, persisted to the
// audit_messages table.
//
// # Event Types
//
//   - RegisterEvent: user registration, successful or rejected
//   - LecturerEvent: lecturer added by an administrator
//   - EvaluationEvent: evaluation submitted or refused
//
// # Usage
//
//	auditor := audit.NewAuditor(audit.NewLogger(), store, log, cfg.AuditEnabled)
//	auditor.Record(ctx, audit.RegisterEvent{UserIndex: "0001", Email: email, Success: true})
//
// Audit logging is controlled by the audit_enabled setting
// (EVAL_AUDIT_ENABLED).
package audit
