package templates

// ContentBundle тексты, которыми тональный пресет заполняет настройки
type ContentBundle struct {
	Introduction     string `json:"introduction"`
	Recommendations  string `json:"recommendations"`
	Conclusion       string `json:"conclusion"`
	InstitutionName  string `json:"institution_name"`
	ResponsibleAgent string `json:"responsible_agent"`
}

// ContentTemplate тональный пресет (formal, educational, technical)
type ContentTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Content     ContentBundle `json:"content"`
}

// Prefill возвращает поля редактируемых настроек, заполненные текстами пресета
func (c ContentTemplate) Prefill() map[string]any {
	return map[string]any{
		SectionTextKey("introduction"):    c.Content.Introduction,
		SectionTextKey("recommendations"): c.Content.Recommendations,
		SectionTextKey("conclusion"):      c.Content.Conclusion,
		"content_company_name":            c.Content.InstitutionName,
		"content_responsible_agent":       c.Content.ResponsibleAgent,
	}
}

var contentOrder = []string{"formal", "educational", "technical"}

var contentTemplates = map[string]ContentTemplate{
	"formal": {
		ID:          "formal",
		Name:        "Formal",
		Description: "Redacción institucional para informes oficiales",
		Content: ContentBundle{
			Introduction:     "Por medio del presente documento se informan los resultados de la evaluación realizada al estudiante, conforme a los instrumentos aprobados por la institución.",
			Recommendations:  "Se recomienda a la familia y al equipo docente implementar las acciones descritas, dando seguimiento periódico a su cumplimiento.",
			Conclusion:       "Se extiende el presente informe para los fines que el interesado estime convenientes.",
			InstitutionName:  "Institución Educativa",
			ResponsibleAgent: "Coordinación Académica",
		},
	},
	"educational": {
		ID:          "educational",
		Name:        "Educativo",
		Description: "Lenguaje cercano orientado a familias y docentes",
		Content: ContentBundle{
			Introduction:     "¡Hola! En este reporte compartimos cómo le fue a tu hijo o hija en las actividades de evaluación y qué podemos hacer juntos para seguir aprendiendo.",
			Recommendations:  "Te proponemos actividades sencillas y divertidas para realizar en casa, acompañando siempre con paciencia y reconocimiento.",
			Conclusion:       "Cada niño aprende a su ritmo. ¡Sigamos acompañando su crecimiento!",
			InstitutionName:  "Centro Educativo",
			ResponsibleAgent: "Docente de aula",
		},
	},
	"technical": {
		ID:          "technical",
		Name:        "Técnico",
		Description: "Detalle de instrumentos, puntajes y criterios para especialistas",
		Content: ContentBundle{
			Introduction:     "Se aplicaron instrumentos estandarizados de evaluación; los puntajes se normalizaron en una escala de 0 a 100 para su comparación entre dimensiones.",
			Recommendations:  "Se sugiere intervención focalizada en las dimensiones con puntaje inferior al percentil 25, con reevaluación a las 12 semanas.",
			Conclusion:       "Los resultados deben interpretarse junto con la observación clínica y el historial académico del estudiante.",
			InstitutionName:  "Departamento de Psicopedagogía",
			ResponsibleAgent: "Especialista en evaluación",
		},
	},
}

// ContentTemplates возвращает пресеты в фиксированном порядке
func ContentTemplates() []ContentTemplate {
	out := make([]ContentTemplate, 0, len(contentOrder))
	for _, id := range contentOrder {
		out = append(out, contentTemplates[id])
	}
	return out
}

// LookupContentTemplate возвращает пресет по ID
func LookupContentTemplate(id string) (ContentTemplate, bool) {
	c, ok := contentTemplates[id]
	return c, ok
}
