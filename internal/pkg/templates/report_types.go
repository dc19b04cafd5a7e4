// Package templates содержит статические реестры шаблонов отчетов:
// типы отчетов с их разделами и настройками по умолчанию, а также
// тональные пресеты текста.
package templates

import (
	"errors"
	"fmt"
)

// ErrUnknownReportType возвращается для типа отчета без зарегистрированного шаблона
var ErrUnknownReportType = errors.New("unknown report type")

// ReportType идентификатор типа отчета
type ReportType string

const (
	Motricidad   ReportType = "motricidad"
	Cornell      ReportType = "cornell"
	Chaea        ReportType = "chaea"
	Tam          ReportType = "tam"
	Competencias ReportType = "competencias"
	Prediccion   ReportType = "prediccion"
)

// IsPrediction сообщает, является ли отчет прогнозным (ИИ-прогноз прогресса)
func (rt ReportType) IsPrediction() bool {
	return rt == Prediccion
}

// VisualTemplate визуальный пресет оформления страниц
type VisualTemplate string

const (
	Classic VisualTemplate = "classic"
	Modern  VisualTemplate = "modern"
	Minimal VisualTemplate = "minimal"
)

// Valid сообщает, известен ли пресет
func (v VisualTemplate) Valid() bool {
	switch v {
	case Classic, Modern, Minimal:
		return true
	}
	return false
}

// Section именованный блок содержимого отчета
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultConfig настройки типа отчета по умолчанию
type DefaultConfig struct {
	HeaderText       string            `json:"header_text"`
	FooterText       string            `json:"footer_text"`
	PrimaryColor     string            `json:"primary_color"`
	Template         VisualTemplate    `json:"template"`
	CompanyName      string            `json:"content_company_name,omitempty"`
	ResponsibleAgent string            `json:"content_responsible_agent,omitempty"`
	SectionOrder     []string          `json:"section_order"`
	SectionTexts     map[string]string `json:"section_texts"` // ключ - ID раздела
}

// ReportTypeTemplate описание типа отчета
type ReportTypeTemplate struct {
	ID             ReportType    `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Icon           string        `json:"icon"`
	CustomSections []Section     `json:"custom_sections"`
	Defaults       DefaultConfig `json:"default_config"`
}

// Section возвращает раздел по ID
func (t ReportTypeTemplate) Section(id string) (Section, bool) {
	for _, s := range t.CustomSections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// SectionTextKey имя поля настроек с текстом раздела
func SectionTextKey(sectionID string) string {
	return "content_" + sectionID + "_text"
}

// order фиксирует порядок выдачи в All
var order = []ReportType{Motricidad, Cornell, Chaea, Tam, Competencias, Prediccion}

// Lookup возвращает шаблон типа отчета
func Lookup(rt ReportType) (ReportTypeTemplate, bool) {
	t, ok := reportTypes[rt]
	return t, ok
}

// Get возвращает шаблон типа отчета или ErrUnknownReportType
func Get(rt ReportType) (ReportTypeTemplate, error) {
	t, ok := reportTypes[rt]
	if !ok {
		return ReportTypeTemplate{}, fmt.Errorf("%w %q", ErrUnknownReportType, string(rt))
	}
	return t, nil
}

// ParseReportType проверяет строковый идентификатор типа отчета
func ParseReportType(s string) (ReportType, error) {
	rt := ReportType(s)
	if _, ok := reportTypes[rt]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownReportType, s)
	}
	return rt, nil
}

// All возвращает все шаблоны в порядке глоссария
func All() []ReportTypeTemplate {
	out := make([]ReportTypeTemplate, 0, len(order))
	for _, rt := range order {
		out = append(out, reportTypes[rt])
	}
	return out
}

var (
	sectionIntroduction = Section{
		ID:          "introduction",
		Title:       "Introducción",
		Description: "Presentación del estudiante y objetivo de la evaluación",
	}
	sectionResults = Section{
		ID:          "resultados",
		Title:       "Resultados",
		Description: "Puntajes obtenidos y su interpretación",
	}
	sectionRecommendations = Section{
		ID:          "recommendations",
		Title:       "Recomendaciones",
		Description: "Actividades y estrategias sugeridas",
	}
	sectionConclusion = Section{
		ID:          "conclusion",
		Title:       "Conclusión",
		Description: "Síntesis final y próximos pasos",
	}
)

const (
	defaultFooter = "Documento confidencial de uso exclusivamente educativo"
	defaultColor  = "#8EB8B5"
)

var reportTypes = map[ReportType]ReportTypeTemplate{
	Motricidad: {
		ID:          Motricidad,
		Name:        "Motricidad Fina",
		Description: "Evaluación de habilidades de motricidad fina",
		Icon:        "✋",
		CustomSections: []Section{
			sectionIntroduction,
			{ID: "evaluacion_motriz", Title: "Evaluación Motriz", Description: "Desempeño en las tareas de motricidad fina"},
			sectionResults,
			sectionRecommendations,
			sectionConclusion,
		},
		Defaults: DefaultConfig{
			HeaderText:   "Reporte de Evaluación de Motricidad Fina",
			FooterText:   defaultFooter,
			PrimaryColor: defaultColor,
			Template:     Classic,
			SectionOrder: []string{"introduction", "evaluacion_motriz", "resultados", "recommendations", "conclusion"},
			SectionTexts: map[string]string{
				"introduction":      "El presente reporte describe el desempeño del estudiante en las actividades de motricidad fina: trazado, recorte, ensartado y manipulación de objetos pequeños.",
				"evaluacion_motriz": "Se observaron la precisión del agarre, la coordinación óculo-manual y la fluidez del trazo durante las tareas propuestas.",
				"recommendations":   "Se recomienda realizar diariamente actividades de **pinza fina** como modelado con plastilina, ensartado de cuentas y recorte siguiendo líneas.",
				"conclusion":        "Se sugiere repetir la evaluación en un periodo de tres meses para medir el progreso alcanzado.",
			},
		},
	},
	Cornell: {
		ID:          Cornell,
		Name:        "Hábitos de Estudio (Cornell)",
		Description: "Cuestionario de hábitos y técnicas de estudio",
		Icon:        "📚",
		CustomSections: []Section{
			sectionIntroduction,
			{ID: "habitos_estudio", Title: "Hábitos de Estudio", Description: "Organización, concentración y técnicas utilizadas"},
			sectionResults,
			sectionRecommendations,
			sectionConclusion,
		},
		Defaults: DefaultConfig{
			HeaderText:   "Reporte de Hábitos de Estudio",
			FooterText:   defaultFooter,
			PrimaryColor: "#5B8DB8",
			Template:     Classic,
			SectionOrder: []string{"introduction", "habitos_estudio", "resultados", "recommendations", "conclusion"},
			SectionTexts: map[string]string{
				"introduction":    "Este reporte resume las respuestas del estudiante al cuestionario de hábitos de estudio basado en el método Cornell.",
				"habitos_estudio": "Se analizaron la planificación del tiempo, el ambiente de estudio, la toma de apuntes y la preparación de evaluaciones.",
				"recommendations": "Se recomienda establecer un horario fijo de estudio y practicar la toma de apuntes con el formato Cornell.",
				"conclusion":      "Los hábitos identificados permiten orientar el acompañamiento docente y familiar.",
			},
		},
	},
	Chaea: {
		ID:          Chaea,
		Name:        "Estilos de Aprendizaje (CHAEA)",
		Description: "Cuestionario Honey-Alonso de estilos de aprendizaje",
		Icon:        "🧠",
		CustomSections: []Section{
			sectionIntroduction,
			{ID: "estilos_aprendizaje", Title: "Estilos de Aprendizaje", Description: "Perfil activo, reflexivo, teórico y pragmático"},
			sectionResults,
			sectionRecommendations,
			sectionConclusion,
		},
		Defaults: DefaultConfig{
			HeaderText:   "Reporte de Estilos de Aprendizaje CHAEA",
			FooterText:   defaultFooter,
			PrimaryColor: "#9B7EBD",
			Template:     Minimal,
			SectionOrder: []string{"introduction", "recommendations", "conclusion"},
			SectionTexts: map[string]string{
				"introduction":    "El cuestionario CHAEA identifica la preferencia del estudiante por los estilos activo, reflexivo, teórico y pragmático.",
				"recommendations": "Se sugiere diversificar las actividades de aula para fortalecer los estilos con menor puntaje.",
				"conclusion":      "Conocer el estilo predominante permite adaptar la enseñanza a la forma en que el estudiante aprende mejor.",
			},
		},
	},
	Tam: {
		ID:          Tam,
		Name:        "Modalidad Sensorial (TAM)",
		Description: "Cuestionario de modalidad sensorial visual, auditiva y kinestésica",
		Icon:        "👁",
		CustomSections: []Section{
			sectionIntroduction,
			{ID: "modalidad_sensorial", Title: "Modalidad Sensorial", Description: "Canal preferente de percepción"},
			sectionResults,
			sectionRecommendations,
			sectionConclusion,
		},
		Defaults: DefaultConfig{
			HeaderText:   "Reporte de Modalidad Sensorial",
			FooterText:   defaultFooter,
			PrimaryColor: "#E0A458",
			Template:     Classic,
			SectionOrder: []string{"introduction", "modalidad_sensorial", "resultados", "recommendations", "conclusion"},
			SectionTexts: map[string]string{
				"introduction":        "Este reporte presenta la modalidad sensorial preferente del estudiante: visual, auditiva o kinestésica.",
				"modalidad_sensorial": "Las respuestas permiten identificar el canal por el que el estudiante procesa la información con mayor facilidad.",
				"recommendations":     "Se recomienda apoyar las explicaciones con recursos acordes a la modalidad predominante.",
				"conclusion":          "La modalidad identificada es una orientación y debe complementarse con la observación en aula.",
			},
		},
	},
	Competencias: {
		ID:          Competencias,
		Name:        "Índice de Competencias",
		Description: "Índice compuesto de competencias a partir de todas las evaluaciones",
		Icon:        "📊",
		CustomSections: []Section{
			sectionIntroduction,
			{ID: "indice_competencias", Title: "Índice de Competencias", Description: "Puntaje compuesto por dimensión"},
			sectionResults,
			sectionRecommendations,
			sectionConclusion,
		},
		Defaults: DefaultConfig{
			HeaderText:   "Reporte de Competencias",
			FooterText:   defaultFooter,
			PrimaryColor: "#6BA368",
			Template:     Modern,
			SectionOrder: []string{"introduction", "indice_competencias", "resultados", "recommendations", "conclusion"},
			SectionTexts: map[string]string{
				"introduction":        "El índice de competencias integra los resultados de motricidad, hábitos de estudio, estilos de aprendizaje y modalidad sensorial.",
				"indice_competencias": "Cada dimensión se expresa como el promedio de los puntajes normalizados de las evaluaciones disponibles.",
				"recommendations":     "Se recomienda priorizar las dimensiones con menor puntaje en la planificación del próximo periodo.",
				"conclusion":          "El índice permite seguir la evolución global del estudiante a lo largo del año escolar.",
			},
		},
	},
	Prediccion: {
		ID:          Prediccion,
		Name:        "Predicción de Progreso",
		Description: "Predicción del progreso generada con inteligencia artificial",
		Icon:        "🤖",
		CustomSections: []Section{
			sectionIntroduction,
			{ID: "analisis_predictivo", Title: "Análisis Predictivo", Description: "Proyección del desempeño por dimensión"},
			{ID: "factores", Title: "Factores de Influencia", Description: "Variables con mayor peso en la predicción"},
			sectionRecommendations,
			sectionConclusion,
		},
		Defaults: DefaultConfig{
			HeaderText:   "Reporte de Predicción de Progreso",
			FooterText:   "Predicción generada automáticamente; debe ser interpretada por un profesional",
			PrimaryColor: "#4A7C9D",
			Template:     Modern,
			SectionOrder: []string{"introduction", "analisis_predictivo", "factores", "recommendations", "conclusion"},
			SectionTexts: map[string]string{
				"introduction":        "Este reporte presenta una proyección del progreso del estudiante elaborada a partir de sus evaluaciones anteriores.",
				"analisis_predictivo": "El modelo estima el desempeño esperado en cada dimensión para el siguiente periodo de evaluación.",
				"recommendations":     "Se recomienda reforzar las dimensiones con menor crecimiento esperado mediante actividades focalizadas.",
				"conclusion":          "La predicción es una herramienta de apoyo y no reemplaza el criterio del docente.",
			},
		},
	},
}
