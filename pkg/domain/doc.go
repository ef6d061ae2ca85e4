/*
Package domain contains the core models of the SCORM runtime session layer.

It defines the dialect strategy records (SCORM 1.2 and 2004), the session lifecycle
state, learner interaction records and the truthiness rules used to read host
responses. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Dialect: Maps logical runtime operations to concrete host method and key names.
  - SessionState: Captures the lifecycle phase and cached status values of a session.
  - Interaction: A question presented to the learner and the response recorded for it.
*/
package domain
