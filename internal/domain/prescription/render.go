package prescription

import (
	"html/template"
	"io"
)

// Render writes the A4 print view for a document.
func Render(w io.Writer, doc *Document) error {
	return printTmpl.Execute(w, doc)
}

var printTmpl = template.Must(template.New("prescription").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Prescription {{.Patient.VisitID}}</title>
<style>
  @page { size: A4; margin: 12mm; }
  body { font-family: "Noto Sans", "Noto Sans Bengali", sans-serif; font-size: 11pt; color: #111; }
  header { border-bottom: 2px solid #111; padding-bottom: 6px; }
  header h1 { margin: 0; font-size: 15pt; }
  header p { margin: 2px 0; font-size: 9pt; }
  .patient { display: flex; justify-content: space-between; border-bottom: 1px solid #888; padding: 4px 0; font-size: 10pt; }
  .body { display: flex; margin-top: 8px; }
  .left { width: 34%; border-right: 1px solid #888; padding-right: 8px; }
  .right { width: 66%; padding-left: 10px; }
  .left h2, .right h2 { font-size: 10pt; text-transform: uppercase; margin: 8px 0 2px; }
  ol.meds { padding-left: 18px; }
  ol.meds li { margin-bottom: 8px; }
  .dosage { font-size: 10pt; }
  .sig { font-size: 9pt; font-style: italic; color: #333; }
  footer { margin-top: 24px; display: flex; justify-content: space-between; align-items: flex-end; }
  .signature img { max-height: 40px; }
  .signature { text-align: center; font-size: 9pt; border-top: 1px solid #111; padding-top: 2px; }
  .verify { font-size: 8pt; color: #555; }
</style>
</head>
<body>
<header>
  <h1>{{.Header.DoctorName}}</h1>
  <p>{{.Header.Specialization}} &middot; BMDC Reg. No: {{.Header.BMDCRegNo}}</p>
  <p>{{.Header.Chamber}}{{if .Header.VisitingHours}} &middot; {{.Header.VisitingHours}}{{end}}</p>
</header>

<div class="patient">
  <span>{{.Patient.Name}} ({{.Patient.AgeGender}})</span>
  <span>ID: {{.Patient.PatientCode}} &middot; Visit: {{.Patient.VisitID}}</span>
  <span>Date: {{.Patient.VisitDate}}</span>
</div>

<div class="body">
  <div class="left">
    {{if .Notes}}<h2>Clinical Notes</h2><p>{{.Notes}}</p>{{end}}
    {{if .Diagnosis}}<h2>Diagnosis</h2><p>{{.Diagnosis}}</p>{{end}}
    {{if .ShowLabTests}}
    <h2>Investigations</h2>
    <ul>{{range .LabTests}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
  </div>
  <div class="right">
    <h2>Rx</h2>
    <ol class="meds">
      {{range .Medicines}}
      <li value="{{.Number}}">
        <div>{{.Name}}</div>
        <div class="dosage">{{.Dosage}}</div>
        {{if .HasSig}}<div class="sig">{{.Sig}}</div>{{end}}
      </li>
      {{end}}
    </ol>
  </div>
</div>

<footer>
  <div>
    {{if .Footer.Advice}}<p><strong>Advice:</strong> {{.Footer.Advice}}</p>{{end}}
    {{if .Footer.HasFollowUp}}<p><strong>Follow-up:</strong> {{.Footer.FollowUpDate}}</p>{{end}}
    <p class="verify">Verify: {{.Footer.VerifyURL}}</p>
  </div>
  <div class="signature">
    {{if .Footer.SignatureURL}}<img src="{{.Footer.SignatureURL}}" alt="signature">{{end}}
    <div>{{.Footer.DoctorName}}</div>
  </div>
</footer>
</body>
</html>
`))
