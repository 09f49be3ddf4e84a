package content

import "portfolio-cms/pkg/models"

var testimonials = []struct {
	name, role, company, content string
	rating                       int
}{
	{
		name:    "David Chen",
		role:    "CEO",
		company: "TradeFlex Imports",
		content: "Boko transformed our chaotic operations into a streamlined ERP system. What used to take hours now takes minutes. The ROI was visible within the first month.",
		rating:  5,
	},
	{
		name:    "Sarah Mitchell",
		role:    "Founder",
		company: "GlowBook Studios",
		content: "The booking platform Boko built exceeded all expectations. Our clients love the seamless experience, and our no-show rate dropped by 60%.",
		rating:  5,
	},
	{
		name:    "Michael Okonkwo",
		role:    "Operations Director",
		company: "LogiCore Solutions",
		content: "Working with Boko was refreshingly straightforward. Clear communication, transparent pricing, and delivered exactly what was promised. Rare in this industry.",
		rating:  5,
	},
	{
		name:    "Jennifer Park",
		role:    "Marketing Director",
		company: "Bloom Agency",
		content: "The CRM automation Boko set up saves our team 20+ hours per week. Lead nurturing that used to fall through the cracks is now completely automated.",
		rating:  5,
	},
	{
		name:    "Thomas Adebayo",
		role:    "Founder",
		company: "QuickServe Logistics",
		content: "From messy spreadsheets to a custom dashboard that shows everything in real-time. Boko understood our problems before we finished explaining them.",
		rating:  4,
	},
	{
		name:    "Amanda Foster",
		role:    "COO",
		company: "HealthBridge Clinics",
		content: "The document processing AI Boko implemented cut our intake time by 70%. Patients are happier, staff is happier, everyone wins.",
		rating:  5,
	},
}

// BuiltinTestimonials is served when no review database is configured.
func BuiltinTestimonials() []models.Review {
	out := make([]models.Review, 0, len(testimonials))
	for _, t := range testimonials {
		out = append(out, models.Review{
			Slug:    Slugify(t.name),
			Name:    t.name,
			Role:    t.role,
			Company: t.company,
			Content: t.content,
			Rating:  t.rating,
		})
	}
	return out
}
