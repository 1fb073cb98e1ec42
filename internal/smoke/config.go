// Package smoke drives a running squads server end to end: it uploads a
// generated roster, asks for teams across a range of sizes and checks every
// answer against the distribution invariants.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL    string        // Base URL of the service
	People     int           // Roster size to generate
	Skills     []string      // Skill names for the generated roster
	MinSize    int           // Smallest team size requested
	MaxSize    int           // Largest team size requested
	Workers    int           // Concurrent requests
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Where the generated roster is saved; empty skips saving
	Verbose    bool
}

// Stats holds run statistics.
type Stats struct {
	PeopleGenerated   int
	RequestsSent      int
	PlansVerified     int
	PlansRejected     int // sizes the server correctly refused
	VerificationFails int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

// DefaultSkills are used when Config.Skills is empty.
var DefaultSkills = []string{"Game Design", "Level Design", "Programming", "Narrative", "Graphics", "Teamwork"}
