package templates

// catalog 按展示顺序排列；第一项同时是未知 id 的回落模板。
var catalog = []Descriptor{
	// MODERN
	{ID: "modern-01", Name: "Nova", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#6366f1", SecondaryColor: "#818cf8", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderCentered, SectionStyle: HeadingUnderline, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "modern-02", Name: "Apex", Category: CategoryModern, Layout: LayoutSidebarRight, AccentColor: "#0ea5e9", SecondaryColor: "#38bdf8", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingFilled, SkillStyle: SkillBars, DarkSidebar: true},
	{ID: "modern-03", Name: "Prism", Category: CategoryModern, Layout: LayoutSidebarLeft, AccentColor: "#8b5cf6", SecondaryColor: "#a78bfa", FontFamily: "Outfit", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillDots, DarkSidebar: true},
	{ID: "modern-04", Name: "Nexus", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#10b981", SecondaryColor: "#34d399", FontFamily: "Poppins", HeaderStyle: HeaderBold, SectionStyle: HeadingDots, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "modern-05", Name: "Orbit", Category: CategoryModern, Layout: LayoutTwoColumn, AccentColor: "#f59e0b", SecondaryColor: "#fbbf24", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingTag, SkillStyle: SkillCircles, DarkSidebar: false},
	{ID: "modern-06", Name: "Pulse", Category: CategoryModern, Layout: LayoutSidebarLeft, AccentColor: "#ec4899", SecondaryColor: "#f472b6", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBanner, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "modern-07", Name: "Vertex", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#14b8a6", SecondaryColor: "#2dd4bf", FontFamily: "Outfit", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillBars, DarkSidebar: false},
	{ID: "modern-08", Name: "Carbon", Category: CategoryModern, Layout: LayoutSidebarRight, AccentColor: "#334155", SecondaryColor: "#64748b", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: true},
	{ID: "modern-09", Name: "Spectra", Category: CategoryModern, Layout: LayoutTwoColumn, AccentColor: "#7c3aed", SecondaryColor: "#9061f9", FontFamily: "Poppins", HeaderStyle: HeaderCentered, SectionStyle: HeadingDots, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "modern-10", Name: "Flux", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#db2777", SecondaryColor: "#f472b6", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderCompact, SectionStyle: HeadingTag, SkillStyle: SkillCircles, DarkSidebar: false},
	{ID: "modern-11", Name: "Zenith", Category: CategoryModern, Layout: LayoutSidebarLeft, AccentColor: "#0284c7", SecondaryColor: "#38bdf8", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillDots, DarkSidebar: true},
	{ID: "modern-12", Name: "Stride", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#16a34a", SecondaryColor: "#4ade80", FontFamily: "Outfit", HeaderStyle: HeaderBold, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "modern-13", Name: "Signal", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#f97316", SecondaryColor: "#fb923c", FontFamily: "Poppins", HeaderStyle: HeaderCentered, SectionStyle: HeadingUnderline, SkillStyle: SkillBars, DarkSidebar: false},
	{ID: "modern-14", Name: "Cipher", Category: CategoryModern, Layout: LayoutSidebarRight, AccentColor: "#4f46e5", SecondaryColor: "#818cf8", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingDots, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "modern-15", Name: "Quasar", Category: CategoryModern, Layout: LayoutTwoColumn, AccentColor: "#0891b2", SecondaryColor: "#22d3ee", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBold, SectionStyle: HeadingFilled, SkillStyle: SkillCircles, DarkSidebar: false},
	{ID: "modern-16", Name: "Helios", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#d97706", SecondaryColor: "#fbbf24", FontFamily: "Outfit", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillBars, DarkSidebar: false},
	{ID: "modern-17", Name: "Matrix", Category: CategoryModern, Layout: LayoutSidebarLeft, AccentColor: "#065f46", SecondaryColor: "#059669", FontFamily: "Inter", HeaderStyle: HeaderBanner, SectionStyle: HeadingTag, SkillStyle: SkillDots, DarkSidebar: true},
	{ID: "modern-18", Name: "Vector", Category: CategoryModern, Layout: LayoutSingle, AccentColor: "#6d28d9", SecondaryColor: "#8b5cf6", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBold, SectionStyle: HeadingUnderline, SkillStyle: SkillTags, DarkSidebar: false},

	// MINIMAL
	{ID: "minimal-01", Name: "Clean", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#1e293b", SecondaryColor: "#475569", FontFamily: "Inter", HeaderStyle: HeaderCentered, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-02", Name: "Pure", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#374151", SecondaryColor: "#6b7280", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderLeft, SectionStyle: HeadingNone, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-03", Name: "Slate", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#334155", SecondaryColor: "#64748b", FontFamily: "Outfit", HeaderStyle: HeaderCompact, SectionStyle: HeadingLine, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "minimal-04", Name: "Bare", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#1f2937", SecondaryColor: "#9ca3af", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-05", Name: "Mono", Category: CategoryMinimal, Layout: LayoutSidebarRight, AccentColor: "#27272a", SecondaryColor: "#71717a", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingNone, SkillStyle: SkillDots, DarkSidebar: false},
	{ID: "minimal-06", Name: "Linen", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#78716c", SecondaryColor: "#a8a29e", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderCentered, SectionStyle: HeadingDots, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-07", Name: "Ivory", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#44403c", SecondaryColor: "#78716c", FontFamily: "Outfit", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "minimal-08", Name: "Chalk", Category: CategoryMinimal, Layout: LayoutTwoColumn, AccentColor: "#1e293b", SecondaryColor: "#94a3b8", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-09", Name: "Mist", Category: CategoryMinimal, Layout: LayoutSidebarLeft, AccentColor: "#475569", SecondaryColor: "#94a3b8", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderLeft, SectionStyle: HeadingNone, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-10", Name: "Frost", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#0f172a", SecondaryColor: "#94a3b8", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingLine, SkillStyle: SkillCircles, DarkSidebar: false},
	{ID: "minimal-11", Name: "Pebble", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#52525b", SecondaryColor: "#a1a1aa", FontFamily: "Outfit", HeaderStyle: HeaderCentered, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-12", Name: "Ash", Category: CategoryMinimal, Layout: LayoutSidebarRight, AccentColor: "#374151", SecondaryColor: "#9ca3af", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingDots, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "minimal-13", Name: "Stone", Category: CategoryMinimal, Layout: LayoutSingle, AccentColor: "#57534e", SecondaryColor: "#a8a29e", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBold, SectionStyle: HeadingNone, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "minimal-14", Name: "Dusk", Category: CategoryMinimal, Layout: LayoutTwoColumn, AccentColor: "#1e293b", SecondaryColor: "#64748b", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillDots, DarkSidebar: false},

	// CREATIVE
	{ID: "creative-01", Name: "Canvas", Category: CategoryCreative, Layout: LayoutSidebarLeft, AccentColor: "#7c3aed", SecondaryColor: "#ddd6fe", FontFamily: "Poppins", HeaderStyle: HeaderBanner, SectionStyle: HeadingTag, SkillStyle: SkillCircles, DarkSidebar: true},
	{ID: "creative-02", Name: "Vivid", Category: CategoryCreative, Layout: LayoutSidebarRight, AccentColor: "#db2777", SecondaryColor: "#fbcfe8", FontFamily: "Outfit", HeaderStyle: HeaderBold, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "creative-03", Name: "Splash", Category: CategoryCreative, Layout: LayoutTwoColumn, AccentColor: "#ea580c", SecondaryColor: "#fed7aa", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBanner, SectionStyle: HeadingTag, SkillStyle: SkillBars, DarkSidebar: false},
	{ID: "creative-04", Name: "Fusion", Category: CategoryCreative, Layout: LayoutSidebarLeft, AccentColor: "#0891b2", SecondaryColor: "#cffafe", FontFamily: "Poppins", HeaderStyle: HeaderBanner, SectionStyle: HeadingDots, SkillStyle: SkillCircles, DarkSidebar: true},
	{ID: "creative-05", Name: "Mosaic", Category: CategoryCreative, Layout: LayoutTwoColumn, AccentColor: "#65a30d", SecondaryColor: "#d9f99d", FontFamily: "Outfit", HeaderStyle: HeaderBold, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "creative-06", Name: "Neon", Category: CategoryCreative, Layout: LayoutSingle, AccentColor: "#7c3aed", SecondaryColor: "#c4b5fd", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderCompact, SectionStyle: HeadingTag, SkillStyle: SkillBars, DarkSidebar: false},
	{ID: "creative-07", Name: "Ember", Category: CategoryCreative, Layout: LayoutSidebarRight, AccentColor: "#dc2626", SecondaryColor: "#fca5a5", FontFamily: "Poppins", HeaderStyle: HeaderBanner, SectionStyle: HeadingFilled, SkillStyle: SkillCircles, DarkSidebar: true},
	{ID: "creative-08", Name: "Aurora", Category: CategoryCreative, Layout: LayoutSidebarLeft, AccentColor: "#059669", SecondaryColor: "#a7f3d0", FontFamily: "Outfit", HeaderStyle: HeaderBold, SectionStyle: HeadingTag, SkillStyle: SkillDots, DarkSidebar: true},
	{ID: "creative-09", Name: "Bloom", Category: CategoryCreative, Layout: LayoutSingle, AccentColor: "#e11d48", SecondaryColor: "#fda4af", FontFamily: "Poppins", HeaderStyle: HeaderCentered, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "creative-10", Name: "Cobalt", Category: CategoryCreative, Layout: LayoutSidebarLeft, AccentColor: "#1d4ed8", SecondaryColor: "#93c5fd", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBanner, SectionStyle: HeadingDots, SkillStyle: SkillBars, DarkSidebar: true},
	{ID: "creative-11", Name: "Solar", Category: CategoryCreative, Layout: LayoutTwoColumn, AccentColor: "#b45309", SecondaryColor: "#fde68a", FontFamily: "Outfit", HeaderStyle: HeaderBold, SectionStyle: HeadingTag, SkillStyle: SkillCircles, DarkSidebar: false},
	{ID: "creative-12", Name: "Retro", Category: CategoryCreative, Layout: LayoutSingle, AccentColor: "#9d174d", SecondaryColor: "#fbcfe8", FontFamily: "Poppins", HeaderStyle: HeaderCentered, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "creative-13", Name: "Cosmic", Category: CategoryCreative, Layout: LayoutSidebarRight, AccentColor: "#5b21b6", SecondaryColor: "#c4b5fd", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBanner, SectionStyle: HeadingTag, SkillStyle: SkillDots, DarkSidebar: true},
	{ID: "creative-14", Name: "Lagoon", Category: CategoryCreative, Layout: LayoutSidebarLeft, AccentColor: "#0e7490", SecondaryColor: "#67e8f9", FontFamily: "Outfit", HeaderStyle: HeaderBold, SectionStyle: HeadingFilled, SkillStyle: SkillBars, DarkSidebar: true},

	// CORPORATE
	{ID: "corporate-01", Name: "Executive", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#1e3a5f", SecondaryColor: "#2563eb", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "corporate-02", Name: "Summit", Category: CategoryCorporate, Layout: LayoutSidebarRight, AccentColor: "#0c4a6e", SecondaryColor: "#0284c7", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "corporate-03", Name: "Prestige", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#1e293b", SecondaryColor: "#0f172a", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "corporate-04", Name: "Boardroom", Category: CategoryCorporate, Layout: LayoutTwoColumn, AccentColor: "#1a1a2e", SecondaryColor: "#16213e", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingFilled, SkillStyle: SkillDots, DarkSidebar: true},
	{ID: "corporate-05", Name: "Pinnacle", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#155e75", SecondaryColor: "#06b6d4", FontFamily: "Outfit", HeaderStyle: HeaderCompact, SectionStyle: HeadingLine, SkillStyle: SkillBars, DarkSidebar: false},
	{ID: "corporate-06", Name: "Titan", Category: CategoryCorporate, Layout: LayoutSidebarLeft, AccentColor: "#312e81", SecondaryColor: "#4338ca", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "corporate-07", Name: "Meridian", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#1f2937", SecondaryColor: "#374151", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderCentered, SectionStyle: HeadingDots, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "corporate-08", Name: "Vanguard", Category: CategoryCorporate, Layout: LayoutTwoColumn, AccentColor: "#0f4c81", SecondaryColor: "#1e6fb8", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingFilled, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "corporate-09", Name: "Core", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#0d3349", SecondaryColor: "#0e79b2", FontFamily: "Outfit", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "corporate-10", Name: "Pillar", Category: CategoryCorporate, Layout: LayoutSidebarRight, AccentColor: "#1b4f72", SecondaryColor: "#2471a3", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingUnderline, SkillStyle: SkillBars, DarkSidebar: true},
	{ID: "corporate-11", Name: "Sterling", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#243b55", SecondaryColor: "#141e30", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderBold, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "corporate-12", Name: "Anchor", Category: CategoryCorporate, Layout: LayoutSidebarLeft, AccentColor: "#1a237e", SecondaryColor: "#3949ab", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingLine, SkillStyle: SkillTags, DarkSidebar: true},
	{ID: "corporate-13", Name: "Fortress", Category: CategoryCorporate, Layout: LayoutTwoColumn, AccentColor: "#263238", SecondaryColor: "#546e7a", FontFamily: "Outfit", HeaderStyle: HeaderLeft, SectionStyle: HeadingFilled, SkillStyle: SkillList, DarkSidebar: true},
	{ID: "corporate-14", Name: "Empire", Category: CategoryCorporate, Layout: LayoutSingle, AccentColor: "#37474f", SecondaryColor: "#546e7a", FontFamily: "Inter", HeaderStyle: HeaderCentered, SectionStyle: HeadingDots, SkillStyle: SkillBars, DarkSidebar: false},

	// ATS
	{ID: "ats-01", Name: "ATS Pro", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#1e293b", SecondaryColor: "#334155", FontFamily: "Arial", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-02", Name: "Scan Ready", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#0f172a", SecondaryColor: "#475569", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-03", Name: "Clean Parse", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#1f2937", SecondaryColor: "#374151", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-04", Name: "Keyword Max", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#111827", SecondaryColor: "#6b7280", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "ats-05", Name: "Recruiter", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#1e3a5f", SecondaryColor: "#2563eb", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-06", Name: "Tracker", Category: CategoryATS, Layout: LayoutTwoColumn, AccentColor: "#064e3b", SecondaryColor: "#059669", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-07", Name: "Pass Through", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#1e293b", SecondaryColor: "#475569", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderLeft, SectionStyle: HeadingNone, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-08", Name: "Score High", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#312e81", SecondaryColor: "#4338ca", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-09", Name: "Bot Proof", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#134e4a", SecondaryColor: "#0d9488", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-10", Name: "Parse Pro", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#1e293b", SecondaryColor: "#64748b", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingUnderline, SkillStyle: SkillTags, DarkSidebar: false},
	{ID: "ats-11", Name: "HR Favorite", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#0c4a6e", SecondaryColor: "#0284c7", FontFamily: "Plus Jakarta Sans", HeaderStyle: HeaderLeft, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-12", Name: "Clear Read", Category: CategoryATS, Layout: LayoutTwoColumn, AccentColor: "#1e293b", SecondaryColor: "#475569", FontFamily: "Inter", HeaderStyle: HeaderCompact, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-13", Name: "Job Ready", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#14532d", SecondaryColor: "#166534", FontFamily: "Inter", HeaderStyle: HeaderLeft, SectionStyle: HeadingUnderline, SkillStyle: SkillList, DarkSidebar: false},
	{ID: "ats-14", Name: "Applicant", Category: CategoryATS, Layout: LayoutSingle, AccentColor: "#312e81", SecondaryColor: "#3730a3", FontFamily: "Inter", HeaderStyle: HeaderBold, SectionStyle: HeadingLine, SkillStyle: SkillList, DarkSidebar: false},
}
