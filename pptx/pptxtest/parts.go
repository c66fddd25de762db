package pptxtest

import (
	"fmt"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// ContentTypesXML declares given slide parts.
func ContentTypesXML(slides ...string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, s := range slides {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, s)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

// PresentationXML lists slides by relationship id.
func PresentationXML(cx, cy int64, slideRels ...string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation %s>`, Namespaces)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(slideRels) > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i, id := range slideRels {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="%s"/>`, 256+i, id)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	if cx > 0 && cy > 0 {
		fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, cx, cy)
	}
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/></p:presentation>`)
	return b.String()
}

// CorePropsXML is package core properties part.
func CorePropsXML(title, creator string) string {
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">` +
		`<dc:title>` + title + `</dc:title><dc:creator>` + creator + `</dc:creator>` +
		`<dcterms:modified>2024-01-02T03:04:05Z</dcterms:modified></cp:coreProperties>`
}

func spTree(tree string) string {
	return `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		tree + `</p:spTree>`
}

// SlideXML wraps shape tree content into slide part.
func SlideXML(tree string) string {
	return xmlHeader + `<p:sld ` + Namespaces + `><p:cSld>` + spTree(tree) + `</p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`
}

// HiddenSlideXML is SlideXML with show="0".
func HiddenSlideXML(tree string) string {
	return strings.Replace(SlideXML(tree), `<p:sld `, `<p:sld show="0" `, 1)
}

// LayoutXML wraps shape tree content into layout part. Non empty override
// holds overrideClrMapping attributes.
func LayoutXML(tree, override string) string {
	mapping := `<a:masterClrMapping/>`
	if override != "" {
		mapping = `<a:overrideClrMapping ` + override + `/>`
	}
	return xmlHeader + `<p:sldLayout ` + Namespaces + ` type="obj"><p:cSld name="Title and Content">` + spTree(tree) + `</p:cSld>` +
		`<p:clrMapOvr>` + mapping + `</p:clrMapOvr></p:sldLayout>`
}

// DefaultColorMap is the usual master color mapping.
const DefaultColorMap = `bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" ` +
	`accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"`

// MasterXML wraps shape tree content into master part with default text styles.
func MasterXML(tree string) string {
	return MasterXMLWithStyles(tree, DefaultTextStyles)
}

// MasterXMLWithStyles allows custom p:txStyles content.
func MasterXMLWithStyles(tree, styles string) string {
	return xmlHeader + `<p:sldMaster ` + Namespaces + `><p:cSld>` + spTree(tree) + `</p:cSld>` +
		`<p:clrMap ` + DefaultColorMap + `/>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
		`<p:txStyles>` + styles + `</p:txStyles></p:sldMaster>`
}

// DefaultTextStyles: titles 44pt centered, body 32/28pt with bullets, other 18pt.
const DefaultTextStyles = `<p:titleStyle><a:lvl1pPr algn="ctr"><a:defRPr sz="4400"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
	`<a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>` +
	`<p:bodyStyle><a:lvl1pPr marL="342900" indent="-342900" algn="l"><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/>` +
	`<a:defRPr sz="3200"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr>` +
	`<a:lvl2pPr marL="742950" indent="-285750" algn="l"><a:buChar char="&#8211;"/><a:defRPr sz="2800"/></a:lvl2pPr></p:bodyStyle>` +
	`<p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:otherStyle>`

// DefaultMasterTree has title, body, date and slide number placeholders.
var DefaultMasterTree = Sp(2, "Title Placeholder 1", Ph("title", ""), Xfrm(457200, 274638, 8229600, 1143000), "") +
	Sp(3, "Text Placeholder 2", Ph("body", "1"), Xfrm(457200, 1600200, 8229600, 4525963), "") +
	Sp(4, "Date Placeholder 3", Ph("dt", "2"), Xfrm(457200, 6356350, 2133600, 365125), "") +
	Sp(5, "Slide Number Placeholder 4", Ph("sldNum", "4"), Xfrm(6553200, 6356350, 2133600, 365125), "")

// DefaultLayoutTree declares placeholders without geometry.
var DefaultLayoutTree = Sp(2, "Title 1", Ph("title", ""), "", "") +
	Sp(3, "Content Placeholder 2", Ph("", "1"), "", "")

// DefaultSlideTree fills layout placeholders with text.
var DefaultSlideTree = Sp(2, "Title 1", Ph("title", ""), "", TxBody(Para("", Run("", "Hello")))) +
	Sp(3, "Content Placeholder 2", Ph("", "1"), "", TxBody(Para("", Run("", "First")), Para(`<a:pPr lvl="1"/>`, Run("", "Second"))))

// ThemeXML defines Office like color and font schemes.
const ThemeXML = xmlHeader + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="1F497D"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4F81BD"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="C0504D"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="8064A2"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="F79646"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0000FF"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="800080"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/></a:minorFont></a:fontScheme>` +
	`</a:themeElements></a:theme>`

// Ph renders nvPr with placeholder, empty arguments are omitted.
func Ph(typ, idx string) string {
	attrs := ""
	if typ != "" {
		attrs += ` type="` + typ + `"`
	}
	if idx != "" {
		attrs += ` idx="` + idx + `"`
	}
	return `<p:ph` + attrs + `/>`
}

// Xfrm renders a:xfrm with offset and extent.
func Xfrm(x, y, cx, cy int64) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, x, y, cx, cy)
}

// Sp renders p:sp. nvPr content, spPr content and txBody are inserted as is.
func Sp(id int, name, nvPr, spPr, txBody string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr><p:spPr>%s</p:spPr>%s</p:sp>`,
		id, name, nvPr, spPr, txBody)
}

// TxBody renders p:txBody with given paragraphs.
func TxBody(paras ...string) string {
	return `<p:txBody><a:bodyPr/><a:lstStyle/>` + strings.Join(paras, "") + `</p:txBody>`
}

// Para renders a:p, pPr is inserted as is.
func Para(pPr string, runs ...string) string {
	return `<a:p>` + pPr + strings.Join(runs, "") + `</a:p>`
}

// Run renders a:r, rPr is inserted as is.
func Run(rPr, text string) string {
	return `<a:r>` + rPr + `<a:t>` + text + `</a:t></a:r>`
}

// AutoNum renders paragraph properties with numbered bullet.
func AutoNum(lvl int, scheme string) string {
	return fmt.Sprintf(`<a:pPr lvl="%d"><a:buAutoNum type="%s"/></a:pPr>`, lvl, scheme)
}
