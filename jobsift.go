// Package jobsift turns raw HTML crawled from job listing sites into
// structured job posting records using LLM extraction, under hard
// resource constraints: per-provider daily call quotas, bounded input
// size per call, aggressive provider rate limits, and frequently
// malformed or truncated model output.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// gemini/, openai/), with orchestration logic in extract/ and invoke/.
package jobsift
