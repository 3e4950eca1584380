package domain

// TaskID names one of the fixed medical-image analysis intents.
type TaskID string

const (
	TaskBoneFracture       TaskID = "bone_fracture"
	TaskBoneMarrow         TaskID = "bone_marrow"
	TaskKneeOsteoarthritis TaskID = "knee_osteoarthritis"
	TaskOsteoporosis       TaskID = "osteoporosis"
	TaskBoneAge            TaskID = "bone_age"
	TaskCervicalSpine      TaskID = "cervical_spine"
)

// TaskDefinition maps a task to its natural-language instruction template.
// The catalog is defined at process start and never mutated.
type TaskDefinition struct {
	ID     TaskID `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"-"`
}

var taskCatalog = []TaskDefinition{
	{
		ID:   TaskBoneFracture,
		Name: "Bone Fracture Detection",
		Prompt: "Analyze the X-ray image for fractures and classify into: avulsion fracture, " +
			"comminuted fracture, hairline fracture, impacted fracture, oblique fracture, spiral " +
			"fracture, pathological fracture, or no fracture. Provide healing measures, nutrition, " +
			"lifestyle changes, and whether to consult a doctor.",
	},
	{
		ID:   TaskBoneMarrow,
		Name: "Bone Marrow Cell Classification",
		Prompt: "Analyze the biopsy image and classify bone marrow cells into categories such as " +
			"abnormal eosinophil, basophil, blast, erythroblast, eosinophil, lymphocyte, " +
			"metamyelocyte, monocyte, plasma cell, etc. Identify concerning cells linked to cancer risk.",
	},
	{
		ID:   TaskKneeOsteoarthritis,
		Name: "Knee Joint Osteoarthritis Detection",
		Prompt: "Analyze the knee X-ray and classify the osteoarthritis severity: Grade 0 (Healthy), " +
			"Grade 1 (Doubtful joint narrowing), Grade 2 (Minimal osteophytes), Grade 3 (Moderate " +
			"joint space narrowing and sclerosis), or Grade 4 (Severe osteoarthritis). Provide " +
			"management and lifestyle recommendations.",
	},
	{
		ID:   TaskOsteoporosis,
		Name: "Osteoporosis Stage Prediction & BMD Score",
		Prompt: "Analyze the uploaded bone X-ray and determine the osteoporosis stage (Normal, " +
			"Osteopenia, or Osteoporosis). Additionally, predict an estimated Bone Mineral Density " +
			"(BMD) score based on the image. Offer insights on bone health and possible lifestyle changes.",
	},
	{
		ID:   TaskBoneAge,
		Name: "Bone Age Detection",
		Prompt: "Analyze the X-ray of a child's hand and accurately predict the bone age. Provide " +
			"insights into growth patterns.",
	},
	{
		ID:   TaskCervicalSpine,
		Name: "Cervical Spine Fracture Detection",
		Prompt: "Analyze the CT scan image of the cervical spine for fractures. Identify the " +
			"location, type (compression, burst, flexion teardrop, etc.), severity, and potential " +
			"risks. Provide recommendations on medical evaluation and treatment approaches.",
	},
}

// FollowUpInstruction is the fixed prompt used for chat turns grounded in a
// previous analysis. The stored report and the user's question travel as
// auxiliary text; no image is sent.
const FollowUpInstruction = "You previously analyzed a medical image and produced the report " +
	"included below. Answer the user's follow-up question using only that report and general " +
	"medical knowledge. If the report does not cover the question, say so plainly."

// Tasks returns the full catalog in its fixed order.
func Tasks() []TaskDefinition {
	out := make([]TaskDefinition, len(taskCatalog))
	copy(out, taskCatalog)
	return out
}

// TaskByID looks up a catalog entry.
func TaskByID(id TaskID) (TaskDefinition, bool) {
	for _, t := range taskCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return TaskDefinition{}, false
}
