package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
)

// SSCCLabelData is one logistics-unit label.
type SSCCLabelData struct {
	SSCC18       string
	URN          string
	SenderName   string
	ReceiverName string
	LotNumber    string
}

func renderSSCCLabelsPDF(labels []SSCCLabelData, printedAt time.Time) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels to render")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("SSCC Labels", false)

	for i, label := range labels {
		// GS1-128 with the (00) application identifier for SSCC.
		barcodeValue := "00" + label.SSCC18
		barcodePNG, err := renderCode128PNG(barcodeValue, 1200, 260)
		if err != nil {
			return nil, err
		}

		pdf.AddPage()
		senderName := strings.TrimSpace(label.SenderName)
		if senderName == "" {
			senderName = "Unknown Sender"
		}
		receiverName := strings.TrimSpace(label.ReceiverName)
		if receiverName == "" {
			receiverName = "Unknown Receiver"
		}

		pdf.SetFont("Helvetica", "B", 40)
		pdf.CellFormat(0, 20, senderName, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 30)
		pdf.CellFormat(0, 16, "SHIP TO: "+receiverName, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 16)
		pdf.CellFormat(0, 9, "SSCC: "+label.SSCC18, "", 1, "C", false, 0, "")
		if strings.TrimSpace(label.LotNumber) != "" {
			pdf.CellFormat(0, 9, "Lot: "+label.LotNumber, "", 1, "C", false, 0, "")
		}
		pdf.CellFormat(0, 9, "Printed: "+printedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")

		opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		imageName := fmt.Sprintf("sscc-barcode-%d", i)
		pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
		pageW, _ := pdf.GetPageSize()
		imgW := 240.0
		imgH := 56.0
		x := (pageW - imgW) / 2
		y := 112.0
		pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

		pdf.SetY(y + imgH + 6)
		pdf.SetFont("Helvetica", "B", 24)
		pdf.CellFormat(0, 12, "(00) "+label.SSCC18, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, label.URN, "", 1, "C", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
