package keyring

import "github.com/shiroemons/go-touchline/pkg/layout"

// defaultCandidates は既定の鍵候補 (優先順)
var defaultCandidates = []Candidate{
	{
		Label: "PES2021",
		Key: [KeySize]byte{
			0x58, 0x31, 0x6a, 0x7b, 0x76, 0xbb, 0xd7, 0x45,
			0xf5, 0x4d, 0x7d, 0xc3, 0x98, 0xe2, 0x0d, 0xca,
			0x79, 0xe1, 0x53, 0xcd, 0x1c, 0x1e, 0x7e, 0x02,
			0xf4, 0x04, 0xac, 0x6e, 0xf2, 0xb3, 0x3c, 0x3b,
		},
		Schedule: ScheduleDirect,
		Shape:    layout.ShapeEdit,
	},
	{
		Label: "PES2020",
		Key: [KeySize]byte{
			0x5b, 0x0c, 0xfe, 0x1a, 0x0c, 0xc4, 0xcc, 0xc6,
			0x98, 0xbf, 0xaa, 0x0b, 0x19, 0x08, 0xb6, 0x73,
			0x46, 0x98, 0xe8, 0x42, 0x43, 0xe3, 0x8c, 0xe0,
			0xac, 0xac, 0x80, 0xa4, 0xf2, 0x84, 0x64, 0x53,
		},
		Schedule: ScheduleDirect,
		Shape:    layout.ShapeEdit,
	},
	{
		Label: "PES2019",
		Key: [KeySize]byte{
			0x9d, 0x5d, 0xb0, 0x9a, 0xd7, 0x42, 0xf0, 0x9c,
			0x6e, 0xcd, 0x39, 0x6a, 0x02, 0xb3, 0xfa, 0x54,
			0xf8, 0xf7, 0xcd, 0xce, 0x37, 0x85, 0x18, 0x83,
			0x11, 0x7f, 0x6c, 0x70, 0x93, 0x05, 0x72, 0x7f,
		},
		Schedule: ScheduleDirect,
		Shape:    layout.ShapeEdit,
	},
	{
		Label: "PES2018",
		Key: [KeySize]byte{
			0x6a, 0xfe, 0xc1, 0xa0, 0x4d, 0x16, 0x0c, 0xb5,
			0x78, 0xb8, 0x9a, 0xc4, 0xed, 0xc3, 0xfb, 0x59,
			0xdf, 0xbd, 0x7e, 0xbf, 0x1b, 0x17, 0x04, 0xb7,
			0x36, 0xa5, 0x48, 0xf3, 0xf0, 0xb6, 0x98, 0x4b,
		},
		Schedule: ScheduleDirect,
		Shape:    layout.ShapeEdit,
	},
	{
		Label: "eFootball2022",
		Key: [KeySize]byte{
			0xc4, 0x11, 0x30, 0xa6, 0x34, 0xfb, 0x57, 0x3a,
			0xf4, 0xc2, 0xe0, 0x8b, 0xba, 0x83, 0x35, 0x4c,
			0x2e, 0x95, 0x76, 0x53, 0x0e, 0x16, 0x2a, 0x90,
			0x99, 0x10, 0x1c, 0xfe, 0xc4, 0xa3, 0xd7, 0xc7,
		},
		Schedule: ScheduleDirect,
		Shape:    layout.ShapeEdit,
	},
	{
		Label: "PES2017",
		Key: [KeySize]byte{
			0x22, 0x9d, 0x72, 0x77, 0x51, 0x2b, 0x2d, 0xd8,
			0x80, 0xcd, 0xf0, 0xe8, 0x44, 0x89, 0x16, 0xdd,
			0xf1, 0x08, 0xdc, 0x3f, 0x0f, 0x9d, 0x0e, 0x49,
			0xa5, 0xb9, 0xef, 0x67, 0x47, 0xd9, 0x99, 0x7e,
		},
		Schedule: ScheduleDirect,
		Shape:    layout.ShapeOption,
	},
	{
		Label: "PES2016",
		Key: [KeySize]byte{
			0x28, 0x1a, 0x81, 0xda, 0xfd, 0x18, 0x5e, 0xea,
			0xdd, 0xc2, 0x0f, 0x1c, 0xa1, 0x4c, 0x6b, 0xbb,
			0xb0, 0x66, 0x67, 0x66, 0x33, 0xe5, 0xd2, 0x00,
			0xbf, 0x0d, 0xc4, 0xad, 0x72, 0x2e, 0x93, 0x10,
		},
		Schedule: ScheduleExpanded,
		Shape:    layout.ShapeOption,
	},
}

// defaultSignatures は平文コンテナの先頭マジック
var defaultSignatures = []Signature{
	{Name: "weedit", Magic: []byte("WEEDIT\x00\x01"), Shape: layout.ShapeEdit},
	{Name: "pesedit", Magic: []byte("PESEDIT\x00"), Shape: layout.ShapeEdit},
}

// defaultStreamConstants は LCG キーストリームのシードに XOR する定数
var defaultStreamConstants = []uint32{0xA7590926, 0xABB7B7A6, 0x78A1DD08}
