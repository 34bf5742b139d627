package ui

// レイアウト比率の定数定義
const (
	// Flexレイアウトの比率
	// HEAD : 作業ツリー = 1 : 1
	HeadPaneFlexRatio    = 1
	WorkdirPaneFlexRatio = 1

	// ステータス行の高さ
	StatusLineHeight = 1
)
