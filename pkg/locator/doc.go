/*
Package locator discovers the host-provided SCORM runtime API object.

The host publishes its API object as a global binding ("API" for SCORM 1.2,
"API_1484_11" for SCORM 2004) on some ancestor of the content frame. The Locator
walks the frame hierarchy with a bounded number of hops, escalating through the
parent, opener and opener document contexts, and caches the handle once found.
A failed search is retried on the next call, so hosts that inject their API
object late are still picked up.
*/
package locator
