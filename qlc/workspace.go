// Package qlc emits QLC+ 4.x workspace files (.qxw) from a generated
// show timeline.
package qlc

import "encoding/xml"

// noSceneID is QLC+'s marker for a track without a bound scene.
const noSceneID = "4294967295"

type workspace struct {
	XMLName        xml.Name `xml:"Workspace"`
	CurrentWindow  string   `xml:"CurrentWindow,attr"`
	Creator        creator  `xml:"Creator"`
	Engine         engine   `xml:"Engine"`
	VirtualConsole vconsole `xml:"VirtualConsole"`
}

type creator struct {
	Name    string `xml:"Name"`
	Version string `xml:"Version"`
	Author  string `xml:"Author"`
}

type engine struct {
	InputOutputMap ioMap        `xml:"InputOutputMap"`
	Fixtures       []xmlFixture `xml:"Fixture"`
	Functions      []function   `xml:"Function"`
}

type ioMap struct {
	Universe universe `xml:"Universe"`
}

type universe struct {
	Name string `xml:"Name,attr"`
	ID   int    `xml:"ID,attr"`
}

// xmlFixture mirrors QLC+'s fixture block. Universe and Address are
// 0-indexed here; profiles carry them 1-indexed.
type xmlFixture struct {
	Manufacturer string `xml:"Manufacturer"`
	Model        string `xml:"Model"`
	Mode         string `xml:"Mode"`
	Universe     int    `xml:"Universe"`
	Address      int    `xml:"Address"`
	Channels     int    `xml:"Channels"`
	Name         string `xml:"Name"`
	ID           int    `xml:"ID"`
}

type function struct {
	ID   int    `xml:"ID,attr"`
	Type string `xml:"Type,attr"`
	Name string `xml:"Name,attr"`

	// Scene fields
	Speed       *speed       `xml:"Speed"`
	FixtureVals []fixtureVal `xml:"FixtureVal"`

	// Audio fields
	Source string `xml:"Source,omitempty"`

	// Show fields
	TimeDivision *timeDivision `xml:"TimeDivision"`
	Tracks       []xmlTrack    `xml:"Track"`
}

type speed struct {
	FadeIn   int `xml:"FadeIn,attr"`
	FadeOut  int `xml:"FadeOut,attr"`
	Duration int `xml:"Duration,attr"`
}

type fixtureVal struct {
	ID    int    `xml:"ID,attr"`
	Value string `xml:",chardata"` // "offset,value,offset,value,..."
}

type timeDivision struct {
	Type string `xml:"Type,attr"`
	BPM  int    `xml:"BPM,attr"`
}

type xmlTrack struct {
	ID            int            `xml:"ID,attr"`
	Name          string         `xml:"Name,attr"`
	SceneID       string         `xml:"SceneID,attr"`
	IsMute        int            `xml:"isMute,attr"`
	ShowFunctions []showFunction `xml:"ShowFunction"`
}

type showFunction struct {
	ID        int    `xml:"ID,attr"`
	StartTime int    `xml:"StartTime,attr"`
	Duration  int    `xml:"Duration,attr"`
	Color     string `xml:"Color,attr,omitempty"`
}

// Virtual console blocks (QLC+ 4.x format).

type vconsole struct {
	Frame      frame   `xml:"Frame"`
	Properties vcProps `xml:"Properties"`
}

type appearance struct {
	FrameStyle      string `xml:"FrameStyle"`
	ForegroundColor string `xml:"ForegroundColor"`
	BackgroundColor string `xml:"BackgroundColor"`
	BackgroundImage string `xml:"BackgroundImage"`
	Font            string `xml:"Font"`
}

func defaultAppearance() appearance {
	return appearance{
		FrameStyle:      "None",
		ForegroundColor: "Default",
		BackgroundColor: "Default",
		BackgroundImage: "None",
		Font:            "Default",
	}
}

type windowState struct {
	Visible string `xml:"Visible,attr"`
	X       int    `xml:"X,attr"`
	Y       int    `xml:"Y,attr"`
	Width   int    `xml:"Width,attr"`
	Height  int    `xml:"Height,attr"`
}

type frame struct {
	Caption          string      `xml:"Caption,attr"`
	Appearance       appearance  `xml:"Appearance"`
	WindowState      windowState `xml:"WindowState"`
	AllowChildren    string      `xml:"AllowChildren"`
	AllowResize      string      `xml:"AllowResize"`
	ShowHeader       string      `xml:"ShowHeader"`
	ShowEnableButton string      `xml:"ShowEnableButton"`
	Collapsed        string      `xml:"Collapsed"`
	Disabled         string      `xml:"Disabled"`
	Buttons          []button    `xml:"Button"`
	Slider           slider      `xml:"Slider"`
}

type button struct {
	Icon        string      `xml:"Icon,attr"`
	Caption     string      `xml:"Caption,attr"`
	Function    buttonFunc  `xml:"Function"`
	Action      string      `xml:"Action"`
	Intensity   intensity   `xml:"Intensity"`
	WindowState windowState `xml:"WindowState"`
	Appearance  appearance  `xml:"Appearance"`
}

type buttonFunc struct {
	ID int `xml:"ID,attr"`
}

type intensity struct {
	Adjust string `xml:"Adjust,attr"`
	Value  string `xml:",chardata"`
}

type slider struct {
	Caption            string      `xml:"Caption,attr"`
	WidgetStyle        string      `xml:"WidgetStyle,attr"`
	InvertedAppearance string      `xml:"InvertedAppearance,attr"`
	WindowState        windowState `xml:"WindowState"`
	Appearance         appearance  `xml:"Appearance"`
	SliderMode         sliderMode  `xml:"SliderMode"`
	Level              level       `xml:"Level"`
}

type sliderMode struct {
	ValueDisplayStyle string `xml:"ValueDisplayStyle,attr"`
	Monitor           string `xml:"Monitor,attr"`
	Mode              string `xml:",chardata"`
}

type level struct {
	LowLimit  int            `xml:"LowLimit,attr"`
	HighLimit int            `xml:"HighLimit,attr"`
	Value     int            `xml:"Value,attr"`
	Channels  []levelChannel `xml:"Channel"`
}

type levelChannel struct {
	Fixture int    `xml:"Fixture,attr"`
	Channel string `xml:",chardata"`
}

type vcProps struct {
	Size        vcSize      `xml:"Size"`
	GrandMaster grandMaster `xml:"GrandMaster"`
}

type vcSize struct {
	Width  int `xml:"Width,attr"`
	Height int `xml:"Height,attr"`
}

type grandMaster struct {
	ChannelMode string `xml:"ChannelMode,attr"`
	ValueMode   string `xml:"ValueMode,attr"`
	SliderMode  string `xml:"SliderMode,attr"`
}
