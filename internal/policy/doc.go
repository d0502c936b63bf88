// Package policy evaluates role based access control over a declarative
// (role, resource, action) rule table.
//
// The enforcer moves through Uninitialized → Initializing → Ready, or
// Initializing → Failed when the table is malformed; neither terminal state
// can transition back. Initialization parses the table exactly once per
// process: concurrent callers share a single in-flight parse and observe the
// same outcome.
//
// Until the enforcer is Ready, Can answers from a fixed, hard-coded
// resource → allowed-roles fallback map so navigation stays decidable.
// Once Ready it evaluates strictly: a call is permitted if any subject role
// holds a matching grant, directly or through an explicit grouping rule.
// Matching is exact-string; no rule means denial.
package policy
