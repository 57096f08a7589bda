package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandAnalyze はチャットログを対話的に集計するモードを示す。
	CommandAnalyze Command = "analyze"
	// CommandServe はOAuthコールバックとWebhookを受けるサーバーモードを示す。
	CommandServe Command = "serve"
	// CommandPush は集計結果の定時通知ワーカーモードを示す。
	CommandPush Command = "push"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandAnalyzeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandAnalyze
	}

	switch args[0] {
	case "analyze":
		return CommandAnalyze
	case "serve":
		return CommandServe
	case "push":
		return CommandPush
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandAnalyze
	}
}
