/*
Package course is the client state facade used by course content.

A Client sits on top of a session.Manager and turns domain values (bookmarks,
suspend data, scores, objectives, interactions) into SCORM runtime writes. When no
LMS is reachable it degrades to a session-scoped ports.Storage, so a course can be
previewed standalone and still remember where the learner was.

Every mutating call first runs ReconnectIfNeeded, so callers never have to
connect explicitly.
*/
package course
