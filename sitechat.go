// Package sitechat crawls a website, extracts its readable text into a
// corpus, and answers questions about that corpus by grounding a generative
// model in the extracted text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, gemini/).
package sitechat
