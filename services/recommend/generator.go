package recommend

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"lexconnect/models"
	"lexconnect/services/geo"
)

// Word lists for synthesized provider names and addresses.
var (
	firstNames = []string{
		"Karthik", "Ramesh", "Suresh", "Mahesh", "Ganesh", "Rajesh", "Dinesh",
		"Venkatesh", "Prakash", "Arun", "Vijay", "Kumar", "Sundaram", "Rajan",
		"Mohan", "Gopal", "Sundar", "Anand", "Sathish", "Senthil", "Murugan",
		"Lakshmi", "Priya", "Saranya", "Divya", "Kalpana", "Kavitha", "Meena",
		"Sumathi", "Geetha", "Uma", "Anitha", "Radha", "Saraswathi", "Shanti",
	}

	lastNames = []string{
		"Selvan", "Kumar", "Raman", "Pillai", "Naidu", "Iyer", "Iyengar",
		"Mudaliar", "Gounder", "Chettiar", "Nadar", "Thevar", "Pandian",
		"Krishnan", "Subramanian", "Chandran", "Balasubramanian", "Sundaram",
		"Natarajan", "Venkataraman", "Devi", "Murthy", "Raj", "Muthusamy",
	}

	streetNumbers = []string{"123", "45", "67", "89", "12", "34", "56", "78", "90"}

	streetNames = []string{
		"Gandhi Road", "Nehru Street", "Kamaraj Avenue", "Anna Salai",
		"Periyar Road", "Temple Street", "Market Road", "College Road",
		"Station Road", "Main Street", "Bharathiyar Road",
	}

	areas = []string{
		"Shevapet", "Hasthampatti", "Fairlands", "Alagapuram", "Kondalampatti",
		"R.S. Puram", "Gandhipuram", "Peelamedu", "Saibaba Colony", "Singanallur",
		"Erode Central", "Surampatti", "Sathyamangalam Road", "Solar",
		"Namakkal Town", "Rasipuram", "Tiruchengode", "Paramathi Velur",
	}
)

// Generator synthesizes randomized provider records distributed across the
// district table. The random source is injected so tests can pin outputs.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator seeded from the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// placementRadiusKm is roughly how far from a district center generated
// providers may land.
const placementRadiusKm = 10

// Generate produces ceil(count / numDistricts) providers per district, so
// the output may exceed count. IDs are district- and index-scoped; a second
// call produces different records for the same slot, so callers hold one
// pool per session.
func (g *Generator) Generate(count int) []models.Provider {
	districts := geo.DistrictNames()
	perDistrict := int(math.Ceil(float64(count) / float64(len(districts))))

	providers := make([]models.Provider, 0, perDistrict*len(districts))
	for _, district := range districts {
		for i := 0; i < perDistrict; i++ {
			id := fmt.Sprintf("provider_%s_%d", strings.ToLower(district), i)
			providers = append(providers, g.generateProvider(id, district))
		}
	}

	g.rand.Shuffle(len(providers), func(i, j int) {
		providers[i], providers[j] = providers[j], providers[i]
	})
	return providers
}

func (g *Generator) generateProvider(id, district string) models.Provider {
	rating := math.Round((3+g.rand.Float64()*2)*10) / 10
	experience := 1 + g.rand.Intn(20)
	verified := g.rand.Float64() > 0.3 // 70% verified
	responseTime := 1 + g.rand.Intn(24)

	p := models.Provider{
		ID:             id,
		Name:           g.pick(firstNames) + " " + g.pick(lastNames),
		Category:       g.pick(models.LegalCategories),
		District:       district,
		Address:        g.generateAddress(district),
		Rating:         rating,
		Experience:     experience,
		Verified:       verified,
		Languages:      []string{"Tamil", "English"},
		Location:       g.generateLocation(district),
		ResponseTime:   responseTime,
		AvailableSlots: g.rand.Intn(10),
	}

	// Initial score assumes a category match and a reasonable distance;
	// it is recomputed with real context on every recommendation pass.
	verifiedTerm := 0.0
	if verified {
		verifiedTerm = 1.0
	}
	p.Score = scoreComposite(rating, verifiedTerm, 1.0, 0.8)
	return p
}

// generateLocation places a point within placementRadiusKm of the district
// center using a uniform angle and a uniform radial distance. The radial
// sampling is not area-uniform, so points cluster toward the center; this
// matches the shipped behavior and stays as-is.
func (g *Generator) generateLocation(district string) models.Coordinate {
	d, ok := geo.DistrictByName(district)
	if !ok {
		d = geo.Districts()[0]
	}
	center := d.Center

	radiusInDegrees := placementRadiusKm / 6371.0
	angle := g.rand.Float64() * 2 * math.Pi
	distance := g.rand.Float64() * radiusInDegrees

	latOffset := distance * math.Cos(angle)
	lngOffset := distance * math.Sin(angle) / math.Cos(center.Lat*math.Pi/180)

	return models.Coordinate{
		Lat: center.Lat + latOffset*(180/math.Pi),
		Lng: center.Lng + lngOffset*(180/math.Pi),
	}
}

func (g *Generator) generateAddress(district string) string {
	return fmt.Sprintf("%s %s, %s, %s",
		g.pick(streetNumbers), g.pick(streetNames), g.pick(areas), district)
}

func (g *Generator) pick(list []string) string {
	return list[g.rand.Intn(len(list))]
}
