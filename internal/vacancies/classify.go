package vacancies

import "strings"

// FallbackCategory is used when neither the title nor the source data gives a
// usable category.
const FallbackCategory = "Lainnya"

type categoryRule struct {
	name     string
	keywords []string
}

// Rules are checked top to bottom and the first hit wins, so the order is part
// of the classification result. Matching is plain substring on the
// lower-cased title.
var categoryRules = []categoryRule{
	// tech and digital
	{"Mobile Development", []string{"android", "ios", "mobile", "flutter", "react native", "kotlin", "swift"}},
	{"Web & Software Dev", []string{"frontend", "backend", "full stack", "web", "software", "website", "programmer", "developer", "application"}},
	{"UI/UX Design", []string{"ui/ux", "product design", "user interface", "experience", "figma"}},
	{"Data & AI", []string{"data", "analyst", "science", "ai", "machine learning", "statistics", "statistik", "big data"}},
	{"Network & Security", []string{"network", "security", "cyber", "infra", "sysadmin", "devops", "cloud", "jaringan", "server"}},
	{"IT Support & Infra", []string{"it support", "helpdesk", "teknisi komputer", "pranata komputer", "information technology", "teknik informatika"}},

	// creative and content
	{"Creative Design & Multimedia", []string{"graphic", "desain grafis", "illustrator", "video", "motion", "editor", "animator", "multimedia", "visual", "art director"}},
	{"Content & Social Media", []string{"social media", "content", "copywrit", "creative", "sosial media", "kampanye", "journalist", "reporter"}},

	// business, marketing and sales
	{"Marketing, Branding & PR", []string{"marketing", "market", "seo", "brand", "digital", "pemasaran", "iklan", "advertising", "humas", "public relation", "hubungan masyarakat", "pranata humas"}},
	{"Sales & BizDev", []string{"sales", "business dev", "account", "penjualan", "bisnis", "niaga", "commercial"}},
	{"Finance & Accounting", []string{"finance", "account", "tax", "pajak", "audit", "akuntansi", "keuangan", "fiskal", "perbankan"}},
	{"Human Resources", []string{"hr", "human", "recruit", "talent", "people", "sumber daya", "personalia", "training", "diklat"}},

	// public sector and administration
	{"Public Sector & Administration", []string{"pembina", "penelaah", "pengelola", "pranata", "analis kebijakan", "fungsional", "arsip", "pustaka", "perencana", "pemerintahan", "protokol", "ajudan"}},
	{"General Admin & Support", []string{"admin", "sekretaris", "data entry", "general affair", "operasional kantor", "clerk", "receptionist", "front office", "frontliner", "duta layanan"}},

	// engineering and technical
	{"Engineering & Construction", []string{"teknisi", "engineer", "mekanik", "listrik", "electro", "mesin", "civil", "sipil", "drafter", "architecture", "arsitek", "konstruksi", "planologi", "lingkungan"}},
	{"Quality Control & Assurance", []string{"quality", "qc", "qa", "penguji"}},

	// health and science
	{"Health & Medical", []string{"dokter", "medis", "perawat", "ners", "bidan", "farmasi", "apoteker", "gizi", "kesehatan", "laboratorium", "psikolog", "terapis", "radiografer", "sanitarian"}},
	{"Science & Research", []string{"research", "peneliti", "enumerator", "surveyor", "laboran", "biologi", "kimia", "fisika"}},

	// operations, hospitality, legal, education
	{"Operations & Logistics", []string{"operas", "logistik", "warehouse", "supply", "gudang", "pengadaan", "inventaris", "purchasing", "procurement", "ppic"}},
	{"Hospitality & Tourism", []string{"hotel", "cook", "chef", "kitchen", "barista", "waiter", "room", "housekeeping", "pariwisata", "tour"}},
	{"Legal", []string{"hukum", "legal", "law", "advokasi", "perundang"}},
	{"Education & Training", []string{"guru", "pengajar", "instruktur", "tutor", "kurikulum", "pendidikan", "dosen"}},
}

// Classify resolves the category of a posting from its title. When no rule
// matches, a specific upstream category is kept; generic ones fall back to
// FallbackCategory.
func Classify(title, existing string) string {
	if title == "" {
		return FallbackCategory
	}
	t := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.name
			}
		}
	}
	if !IsGenericCategory(existing) {
		return existing
	}
	return FallbackCategory
}

// IsGenericCategory reports whether a category carries no information.
func IsGenericCategory(category string) bool {
	switch category {
	case "", FallbackCategory, "Other":
		return true
	}
	return false
}

// Categories lists the classifier's categories in priority order.
func Categories() []string {
	out := make([]string, 0, len(categoryRules))
	for _, rule := range categoryRules {
		out = append(out, rule.name)
	}
	return out
}
