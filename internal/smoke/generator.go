package smoke

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/squads/internal/domain/model"
)

const randomFloatDivisor = 1000000

// Rating tiers. Ratings use the 0..5 scale of a class assessment sheet.
const (
	caseAverage = iota
	caseStrong
	caseWeak
	caseSpecialist
	tierCount
)

var surnames = []string{
	"Bonanni", "Pomettini", "Ricchiuti", "Leotta", "De Dominicis", "Reclus",
	"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo",
	"Ricci", "Marino", "Greco", "Bruno", "Gallo", "Conti", "De Luca",
	"Mancini", "Costa", "Giordano", "Rizzo", "Lombardi", "Moretti",
}

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// GenerateRoster builds a roster of people with random ratings. Surnames
// come from a fixed list; repeats get a short uuid suffix so every person
// stays distinguishable in exports.
func GenerateRoster(ctx context.Context, people int, skills []string) (model.Roster, error) {
	if len(skills) == 0 {
		skills = DefaultSkills
	}
	r := model.Roster{
		Skills: append([]string(nil), skills...),
		People: make([]model.Person, 0, people),
	}

	used := make(map[string]bool, people)
	for i := 0; i < people; i++ {
		if err := ctx.Err(); err != nil {
			return model.Roster{}, err
		}
		name := surnames[randomIndex(len(surnames))]
		if used[name] {
			name += "-" + uuid.NewString()[:8]
		}
		used[name] = true

		r.People = append(r.People, model.Person{Surname: name, SkillLevels: generateLevels(len(skills))})
	}
	return r, nil
}

func generateLevels(n int) []float64 {
	levels := make([]float64, n)
	tier := randomIndex(tierCount)
	strongAt := randomIndex(n)
	for i := range levels {
		var v float64
		switch tier {
		case caseStrong:
			v = 3 + getRandomFloat()*2
		case caseWeak:
			v = getRandomFloat() * 2
		case caseSpecialist:
			v = getRandomFloat() * 2
			if i == strongAt {
				v = 4 + getRandomFloat()
			}
		default:
			v = 1 + getRandomFloat()*3
		}
		levels[i] = float64(int(v + 0.5)) // whole ratings, like a marks sheet
	}
	return levels
}
